package commands

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/spf13/cobra"

	"github.com/teranos/gdbind/codegen"
	"github.com/teranos/gdbind/display"
	"github.com/teranos/gdbind/errors"
	"github.com/teranos/gdbind/pipeline"
)

// InspectCmd represents the inspect command
var InspectCmd = &cobra.Command{
	Use:   "inspect <class>",
	Short: "Show how an engine class is bound",
	Long: `Show the Go name, base classes and notifications of an engine class.

The notification enum is either declared by the class itself or inherited
from the nearest base class that declares notifications.

Examples:
  gdbind inspect Node2D
  gdbind inspect OS --json`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

type inspectNotification struct {
	Name  string `json:"name"`
	Value int32  `json:"value"`
	// DeclaredBy is the engine name of the class declaring the constant
	DeclaredBy string `json:"declared_by"`
}

type inspectOutput struct {
	Class            string                `json:"class"`
	GoName           string                `json:"go_name"`
	Bases            []string              `json:"bases"`
	NotificationEnum string                `json:"notification_enum"`
	OwnsEnum         bool                  `json:"owns_enum"`
	Notifications    []inspectNotification `json:"notifications"`
	Exportable       bool                  `json:"exportable"`
	Singleton        bool                  `json:"singleton"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	_, ctx, err := pipeline.Build(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	class := ctx.TyName(args[0])
	if _, ok := ctx.LookupClass(class); !ok {
		return errors.WithHint(
			errors.NewUnknownClassError(args[0]),
			"use the engine name as it appears in extension_api.json, e.g. Node2D")
	}

	output := describeClass(ctx, class)
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), output)
	}
	return renderInspect(cmd, output)
}

func describeClass(ctx *codegen.Context, class codegen.TyName) inspectOutput {
	enum := ctx.NotificationEnumName(class)
	bases := ctx.InheritanceTree().CollectAllBases(class)

	output := inspectOutput{
		Class:            class.Godot(),
		GoName:           class.Go(),
		Bases:            make([]string, 0, len(bases)),
		NotificationEnum: enum.Name,
		OwnsEnum:         enum.DeclaredByOwnClass,
		Exportable:       ctx.IsExportable(class),
		Singleton:        ctx.IsSingleton(class.Godot()),
	}
	for _, base := range bases {
		output.Bases = append(output.Bases, base.Godot())
	}

	// Attribute each visible constant to the nearest class declaring it
	declaredBy := make(map[string]string)
	for i := len(bases) - 1; i >= 0; i-- {
		own, _ := ctx.NotificationConstants(bases[i])
		for _, c := range own {
			declaredBy[c.Ident] = bases[i].Godot()
		}
	}
	own, _ := ctx.NotificationConstants(class)
	for _, c := range own {
		declaredBy[c.Ident] = class.Godot()
	}

	for _, c := range ctx.AllNotificationConstants(class) {
		output.Notifications = append(output.Notifications, inspectNotification{
			Name:       c.Ident,
			Value:      c.Value,
			DeclaredBy: declaredBy[c.Ident],
		})
	}
	return output
}

func renderInspect(cmd *cobra.Command, output inspectOutput) error {
	out := cmd.OutOrStdout()

	// Root class first, the inspected class last
	var list pterm.LeveledList
	level := 0
	for i := len(output.Bases) - 1; i >= 0; i-- {
		list = append(list, pterm.LeveledListItem{Level: level, Text: output.Bases[i]})
		level++
	}
	list = append(list, pterm.LeveledListItem{
		Level: level,
		Text:  pterm.LightGreen(fmt.Sprintf("%s (%s)", output.Class, output.GoName)),
	})

	tree, err := pterm.DefaultTree.WithRoot(putils.TreeFromLeveledList(list)).Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render inheritance")
	}
	fmt.Fprint(out, tree)
	fmt.Fprintln(out)

	ownership := "inherited"
	if output.OwnsEnum {
		ownership = "declared"
	}
	fmt.Fprintf(out, "Notification enum: %s (%s)\n", pterm.Cyan(output.NotificationEnum), ownership)
	if output.Exportable {
		fmt.Fprintln(out, "Exportable: yes")
	}
	if output.Singleton {
		fmt.Fprintln(out, "Singleton: yes")
	}

	if len(output.Notifications) == 0 {
		fmt.Fprintln(out, "No notifications")
		return nil
	}

	data := pterm.TableData{{"Notification", "Value", "Declared by"}}
	for _, n := range output.Notifications {
		data = append(data, []string{n.Name, strconv.Itoa(int(n.Value)), n.DeclaredBy})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render notifications")
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, table)
	return nil
}
