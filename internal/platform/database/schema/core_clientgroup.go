package schema

// CoreClientGroupTable represents the 'core.clientgroup' table
type CoreClientGroupTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	BranchID    string
	CreatedAt   string
	UpdatedAt   string
}

// CoreClientGroup is the schema definition for core.clientgroup
var CoreClientGroup = CoreClientGroupTable{
	Table:       "core.clientgroup",
	ID:          "id",
	Name:        "name",
	Description: "description",
	BranchID:    "branchid",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t CoreClientGroupTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description, t.BranchID, t.CreatedAt, t.UpdatedAt}
}
