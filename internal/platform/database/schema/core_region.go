package schema

// CoreRegionTable represents the 'core.region' table
type CoreRegionTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	BranchID    string
	CreatedAt   string
	UpdatedAt   string
}

// CoreRegion is the schema definition for core.region
var CoreRegion = CoreRegionTable{
	Table:       "core.region",
	ID:          "id",
	Name:        "name",
	Description: "description",
	BranchID:    "branchid",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t CoreRegionTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description, t.BranchID, t.CreatedAt, t.UpdatedAt}
}
