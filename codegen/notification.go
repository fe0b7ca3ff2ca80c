package codegen

import "fmt"

// NotificationEnum is the enum type a class uses for its notifications
type NotificationEnum struct {
	// Name of the enum
	Name string

	// DeclaredByOwnClass is true if this class declares the enum, rather
	// than reusing the one of a base class
	DeclaredByOwnClass bool
}

// NotificationEnumForOwnClass names the enum declared by class itself
func NotificationEnumForOwnClass(class TyName) NotificationEnum {
	return NotificationEnum{
		Name:               fmt.Sprintf("%sNotification", class.Go()),
		DeclaredByOwnClass: true,
	}
}

// NotificationEnumForOtherClass reuses the enum of another class
func NotificationEnumForOtherClass(other NotificationEnum) NotificationEnum {
	return NotificationEnum{
		Name:               other.Name,
		DeclaredByOwnClass: false,
	}
}

// OwnName returns the enum name if it is declared by the current class,
// or false if it is inherited.
func (e NotificationEnum) OwnName() (string, bool) {
	if e.DeclaredByOwnClass {
		return e.Name, true
	}
	return "", false
}

func (e NotificationEnum) String() string { return e.Name }

// NotificationConstant is one notification declared by a class
type NotificationConstant struct {
	// Ident is the enumerator name ("EnterTree")
	Ident string
	// Value is the notification code passed by the engine
	Value int32
}
