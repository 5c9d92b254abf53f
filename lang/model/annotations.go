package model

// Property is a tagged function property.
//
// Pure: no side effects. Public: visible within this module. Export: visible within this
// module and to other modules.
type Property int

const (
	Pure Property = iota
	Public
	Export
)

// PropertyNames lists the recognized property names, for lookups and error messages
var PropertyNames = []string{"Pure", "Public", "Export"}

func (p Property) String() string {
	if int(p) < len(PropertyNames) {
		return PropertyNames[p]
	}
	return "Unknown"
}

// ParseProperty looks up a property by its source name
func ParseProperty(name string) (Property, bool) {
	for i, n := range PropertyNames {
		if n == name {
			return Property(i), true
		}
	}
	return 0, false
}

// Permission is a capability a function must be granted
type Permission int

const (
	ReadFile Permission = iota
	WriteFile
	ReadNetwork
	WriteNetwork
)

// PermissionNames lists the recognized permission names
var PermissionNames = []string{"ReadFile", "WriteFile", "ReadNetwork", "WriteNetwork"}

func (p Permission) String() string {
	if int(p) < len(PermissionNames) {
		return PermissionNames[p]
	}
	return "Unknown"
}

// ParsePermission looks up a permission by its source name
func ParsePermission(name string) (Permission, bool) {
	for i, n := range PermissionNames {
		if n == name {
			return Permission(i), true
		}
	}
	return 0, false
}
