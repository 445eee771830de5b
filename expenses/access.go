package expenses

import (
	"strings"
)

// AccessSet is the list of cost centers an identity may view, in first-seen order.
type AccessSet []string

func (a AccessSet) Contains(costCenter string) bool {
	for _, v := range a {
		if v == costCenter {
			return true
		}
	}

	return false
}

func (a AccessSet) add(costCenter string) AccessSet {
	if a.Contains(costCenter) {
		return a
	}

	return append(a, costCenter)
}

// PermissionColumns designates the permission worksheet columns. Identity defaults to the
// first column and Access to every column other than Identity.
type PermissionColumns struct {
	Identity string
	Access   []string
}

// ResolveAccessibleCostCenters returns the identity plus every cost center listed in the
// access columns of the identity's permission row. The identity column is compared exactly
// (after trimming the cell) and a missing permission row simply grants no extra access.
func ResolveAccessibleCostCenters(identity string, permissions *Table, columns PermissionColumns) AccessSet {
	access := AccessSet{identity}

	if permissions == nil || len(permissions.Header) == 0 {
		return access
	}

	key := columns.Identity
	if key == "" {
		key = permissions.Header[0]
	}

	granted := columns.Access
	if len(granted) == 0 {
		for _, h := range permissions.Header {
			if h != key {
				granted = append(granted, h)
			}
		}
	}

	for _, record := range permissions.Records {
		if clean(record.Get(key)) != identity {
			continue
		}

		for _, h := range granted {
			if h == key {
				continue
			}

			for _, token := range strings.Split(record.Get(h), ",") {
				if token = clean(token); token != "" {
					access = access.add(token)
				}
			}
		}

		break
	}

	return access
}
