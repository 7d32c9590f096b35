package schema

// CoreBranchTable represents the 'core.branch' table
type CoreBranchTable struct {
	Table     string
	ID        string
	Code      string
	Name      string
	CreatedAt string
	UpdatedAt string
}

// CoreBranch is the schema definition for core.branch
var CoreBranch = CoreBranchTable{
	Table:     "core.branch",
	ID:        "id",
	Code:      "code",
	Name:      "name",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t CoreBranchTable) Columns() []string {
	return []string{t.ID, t.Code, t.Name, t.CreatedAt, t.UpdatedAt}
}
