// Package access defines roles as sets of Module:Action permissions.
//
// Roles are data only. Nothing in Bullion enforces them; they are validated
// against a closed set of modules and actions so stored roles stay well
// formed.
package access

import (
	"sort"
	"strings"

	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/types"
)

// Module is an application area a permission applies to.
type Module string

const (
	ModuleCustomer Module = "Customer"
	ModuleKarigar  Module = "Karigar"
	ModuleDealer   Module = "Dealer"
	ModuleMint     Module = "Mint"
	ModuleTejori   Module = "Tejori"
	ModuleDiamond  Module = "Diamond"
	ModuleHallmark Module = "Hallmark"
	ModuleAccounts Module = "Accounts"
	ModuleHR       Module = "HR"
)

// Modules lists every module.
var Modules = []Module{
	ModuleCustomer, ModuleKarigar, ModuleDealer, ModuleMint, ModuleTejori,
	ModuleDiamond, ModuleHallmark, ModuleAccounts, ModuleHR,
}

// Action is an operation within a module.
type Action string

const (
	ActionView    Action = "View"
	ActionAdd     Action = "Add"
	ActionEdit    Action = "Edit"
	ActionDelete  Action = "Delete"
	ActionApprove Action = "Approve"
)

// Actions lists every action.
var Actions = []Action{ActionView, ActionAdd, ActionEdit, ActionDelete, ActionApprove}

// Valid reports whether m is a known module.
func (m Module) Valid() bool {
	for _, known := range Modules {
		if m == known {
			return true
		}
	}
	return false
}

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}

// Permission grants one action on one module.
type Permission struct {
	Module Module
	Action Action
}

// ParsePermission parses "Module:Action".
func ParsePermission(s string) (Permission, error) {
	mod, act, ok := strings.Cut(s, ":")
	if !ok {
		return Permission{}, types.Invalid("permission", "%q is not Module:Action", s)
	}
	p := Permission{Module: Module(mod), Action: Action(act)}
	if !p.Module.Valid() {
		return Permission{}, types.Invalid("permission", "unknown module %q", mod)
	}
	if !p.Action.Valid() {
		return Permission{}, types.Invalid("permission", "unknown action %q", act)
	}
	return p, nil
}

func (p Permission) String() string {
	return string(p.Module) + ":" + string(p.Action)
}

// MarshalText implements encoding.TextMarshaler.
func (p Permission) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Permission) UnmarshalText(data []byte) error {
	parsed, err := ParsePermission(string(data))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Role is a named permission set.
type Role struct {
	ID          id.RoleID    `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Permissions []Permission `json:"permissions"`
}

// Allows reports whether r grants action on module.
func (r Role) Allows(m Module, a Action) bool {
	for _, p := range r.Permissions {
		if p.Module == m && p.Action == a {
			return true
		}
	}
	return false
}

// NewRole builds a role from "Module:Action" strings. Duplicates collapse and
// the permissions are sorted.
func NewRole(name, description string, perms ...string) (Role, error) {
	if name == "" {
		return Role{}, types.Invalid("name", "is required")
	}
	set := make(map[Permission]struct{}, len(perms))
	for _, s := range perms {
		p, err := ParsePermission(s)
		if err != nil {
			return Role{}, err
		}
		set[p] = struct{}{}
	}
	out := make([]Permission, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return Role{ID: id.NewRoleID(), Name: name, Description: description, Permissions: out}, nil
}

// Book holds roles.
type Book struct {
	Roles []Role
}

// Clone returns a copy of b that shares no slice storage with it.
func (b Book) Clone() Book {
	return Book{Roles: append([]Role(nil), b.Roles...)}
}

// Add stores r. Role names are unique.
func (b *Book) Add(r Role) (Role, error) {
	if r.Name == "" {
		return Role{}, types.Invalid("name", "is required")
	}
	if r.ID.IsNil() {
		r.ID = id.NewRoleID()
	}
	for _, existing := range b.Roles {
		if existing.Name == r.Name {
			return Role{}, types.Conflict("role", "role %q already exists", r.Name)
		}
	}
	b.Roles = append(b.Roles, r)
	return r, nil
}
