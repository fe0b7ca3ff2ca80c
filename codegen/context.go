// Package codegen builds the generation context: the lookup structures the
// emitters query to decide how each engine class is bound.
//
// # Build phases
//
// Build makes two passes over the snapshot:
//
//  1. Ingestion, in snapshot order. Each class that is not excluded gets a
//     lookup entry and an inheritance edge, and if it declares notification
//     constants it gets its own notification enum.
//  2. Closure. Every class without an enum reuses the enum of its nearest
//     base that has one. Bases walked on the way are back-filled with the
//     same enum so that no chain is walked twice.
//
// After Build returns, the Context is read-only. The only state that still
// grows is the type cache, which is write-once per descriptor.
package codegen

import (
	"time"

	"github.com/teranos/gdbind/api"
	"github.com/teranos/gdbind/errors"
	"github.com/teranos/gdbind/logger"
	"github.com/teranos/gdbind/special"
)

// Policy is the per-class policy the builder consults. special.Manifest
// implements it.
type Policy interface {
	// IsClassExcluded reports whether a class is skipped entirely
	IsClassExcluded(godotName string) bool
	// IsExportableRoot reports whether a class is an exportable root
	IsExportableRoot(godotName string) bool
	// GoName normalizes an engine class name
	GoName(godotName string) string
	// TryToNotification returns the enumerator identifier of a notification constant
	TryToNotification(constant api.ClassConstant) (string, bool)
}

// Context is the finished, read-only generation context
type Context struct {
	policy Policy

	engineClasses        map[string]*api.Class
	classOrder           []TyName
	builtinTypes         map[string]struct{}
	nativeStructureTypes map[string]struct{}
	singletons           map[string]struct{}
	inheritanceTree      *InheritanceTree
	cachedGoTypes        *TypeCache

	notificationsByClass         map[string][]NotificationConstant
	notificationEnumNamesByClass map[string]NotificationEnum
}

// builder accumulates the context during Build; it is discarded afterwards
type builder struct {
	ctx *Context
}

// Build creates the context from a complete snapshot
func Build(snapshot *api.ExtensionAPI, policy Policy) (*Context, error) {
	if policy == nil {
		policy = special.Default()
	}

	start := time.Now()
	b := &builder{ctx: &Context{
		policy:                       policy,
		engineClasses:                make(map[string]*api.Class),
		builtinTypes:                 make(map[string]struct{}),
		nativeStructureTypes:         make(map[string]struct{}),
		singletons:                   make(map[string]struct{}),
		inheritanceTree:              NewInheritanceTree(),
		cachedGoTypes:                NewTypeCache(),
		notificationsByClass:         make(map[string][]NotificationConstant),
		notificationEnumNamesByClass: make(map[string]NotificationEnum),
	}}

	b.populateClassifications(snapshot)

	if err := b.ingestClasses(snapshot); err != nil {
		return nil, err
	}
	if err := b.ctx.inheritanceTree.checkAcyclic(); err != nil {
		return nil, err
	}
	if err := b.resolveInheritedNotificationEnums(); err != nil {
		return nil, err
	}

	ctx := b.ctx
	logger.ComponentLogger("codegen").Infow("Context built",
		logger.FieldClasses, len(ctx.classOrder),
		logger.FieldOwnEnums, len(ctx.notificationsByClass),
		logger.FieldSharedEnum, len(ctx.notificationEnumNamesByClass)-len(ctx.notificationsByClass),
		logger.FieldDurationMS, time.Since(start).Milliseconds())

	return ctx, nil
}

func (b *builder) populateClassifications(snapshot *api.ExtensionAPI) {
	for _, singleton := range snapshot.Singletons {
		b.ctx.singletons[singleton.Name] = struct{}{}
	}

	// Variant is not part of builtin_classes
	b.ctx.builtinTypes["Variant"] = struct{}{}
	for _, builtin := range snapshot.BuiltinClasses {
		b.ctx.builtinTypes[builtin.Name] = struct{}{}
	}

	for _, structure := range snapshot.NativeStructures {
		b.ctx.nativeStructureTypes[structure.Name] = struct{}{}
	}
}

// ingestClasses is the first pass: lookups, hierarchy edges, and the
// notification constants of classes that declare them themselves.
func (b *builder) ingestClasses(snapshot *api.ExtensionAPI) error {
	log := logger.ComponentLogger("codegen")

	for i := range snapshot.Classes {
		class := &snapshot.Classes[i]
		className := b.ctx.TyName(class.Name)

		if b.ctx.policy.IsClassExcluded(class.Name) {
			log.Debugw("Skip excluded class", logger.FieldClass, className.Description())
			continue
		}

		log.Debugw("Add engine class", logger.FieldClass, className.Description())
		if _, dup := b.ctx.engineClasses[className.Key()]; dup {
			return errors.WithHint(
				errors.Wrapf(errors.ErrDuplicateInheritance,
					"class %s appears twice in the snapshot", className.Description()),
				"check name_overrides in the special cases manifest for collisions")
		}
		b.ctx.engineClasses[className.Key()] = class
		b.ctx.classOrder = append(b.ctx.classOrder, className)

		if baseGodot, ok := class.Base(); ok {
			baseName := b.ctx.TyName(baseGodot)
			log.Debugw("Inherits", logger.FieldClass, className.Go(), logger.FieldBase, baseName.Description())
			if err := b.ctx.inheritanceTree.Insert(className, baseName); err != nil {
				return err
			}
		}

		if err := b.ingestNotifications(className, class.Constants); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) ingestNotifications(className TyName, constants []api.ClassConstant) error {
	var own []NotificationConstant

	for _, constant := range constants {
		ident, ok := b.ctx.policy.TryToNotification(constant)
		if !ok {
			continue
		}
		value, err := special.NarrowNotificationValue(constant)
		if err != nil {
			return errors.Wrapf(err, "class %s", className.Description())
		}
		own = append(own, NotificationConstant{Ident: ident, Value: value})
	}

	if len(own) == 0 {
		return nil
	}

	enum := NotificationEnumForOwnClass(className)
	b.ctx.notificationsByClass[className.Key()] = own
	b.ctx.notificationEnumNamesByClass[className.Key()] = enum
	logger.Debugw("Declare notification enum",
		logger.FieldClass, className.Go(),
		logger.FieldEnum, enum.Name,
		logger.FieldOwned, true,
		logger.FieldCount, len(own))
	return nil
}

// resolveInheritedNotificationEnums is the second pass. At this point all
// classes with notifications are registered; every other class reuses the
// enum of its nearest base that has one, so the same enum is not declared
// again for each level of the hierarchy.
func (b *builder) resolveInheritedNotificationEnums() error {
	enums := b.ctx.notificationEnumNamesByClass

	for _, className := range b.ctx.classOrder {
		if _, ok := enums[className.Key()]; ok {
			continue
		}

		allBases := b.ctx.inheritanceTree.CollectAllBases(className)

		nearestIndex := -1
		var nearestEnum NotificationEnum
		for i, base := range allBases {
			if enum, ok := enums[base.Key()]; ok {
				nearestIndex = i
				nearestEnum = enum
				break
			}
		}
		if nearestIndex < 0 {
			return errors.WithHint(
				errors.Wrapf(errors.ErrNoNotificationAncestor,
					"class %s (walked %d bases)", className.Description(), len(allBases)),
				"the root class must declare at least one notification constant; check notification_prefix")
		}

		shared := NotificationEnumForOtherClass(nearestEnum)
		logger.Debugw("Reuse notification enum",
			logger.FieldClass, className.Go(),
			logger.FieldEnum, shared.Name,
			logger.FieldOwned, false,
			logger.FieldBase, allBases[nearestIndex].Go())

		// Bases between this class and the nearest declaring base reuse the name too
		for i := nearestIndex - 1; i >= 0; i-- {
			enums[allBases[i].Key()] = shared
		}
		enums[className.Key()] = shared
	}
	return nil
}
