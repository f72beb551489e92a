package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// MaxAdmins is the number of admin accounts the job board permits.
const MaxAdmins = 3

// AdminAccount is an admin as listed by the super admin directory.
type AdminAccount struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// UnmarshalJSON accepts the identifier under either "userId" or "id",
// encoded as a number or a string.
func (a *AdminAccount) UnmarshalJSON(data []byte) error {
	var raw struct {
		UserID   json.RawMessage `json:"userId"`
		ID       json.RawMessage `json:"id"`
		FullName string          `json:"fullName"`
		Email    string          `json:"email"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	idField := raw.UserID
	if len(idField) == 0 || string(idField) == "null" {
		idField = raw.ID
	}
	id, err := decodeID(idField)
	if err != nil {
		return err
	}

	a.ID = id
	a.FullName = raw.FullName
	a.Email = raw.Email
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("admin id: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	return n.String(), nil
}

// NewAdmin is the payload for provisioning an admin account.
type NewAdmin struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminQuota pairs the current admin count with the allowed maximum.
type AdminQuota struct {
	Count int
	Max   int
}

// NewAdminQuota returns the quota for count against MaxAdmins.
func NewAdminQuota(count int) AdminQuota {
	return AdminQuota{Count: count, Max: MaxAdmins}
}

// Full reports whether no more admins can be created.
func (q AdminQuota) Full() bool {
	return q.Count >= q.Max
}

// AdminDashboard is everything the super admin dashboard renders.
type AdminDashboard struct {
	Admins []AdminAccount
	Quota  AdminQuota
}
