package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table       string
	ID          string
	Name        string
	Email       string
	Password    string
	Role        string
	Permissions string
	Branches    string
	Status      string
	Phone       string
	Document    string
	BirthDate   string
	Files       string
	IsDeleted   string
	CreatedAt   string
	UpdatedAt   string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	Name:        "name",
	Email:       "email",
	Password:    "passwordhash",
	Role:        "role",
	Permissions: "permissions",
	Branches:    "branches",
	Status:      "status",
	Phone:       "phone",
	Document:    "document",
	BirthDate:   "birthdate",
	Files:       "files",
	IsDeleted:   "isdeleted",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Email, t.Password, t.Role, t.Permissions,
		t.Branches, t.Status, t.Phone, t.Document, t.BirthDate,
		t.Files, t.IsDeleted, t.CreatedAt, t.UpdatedAt,
	}
}
