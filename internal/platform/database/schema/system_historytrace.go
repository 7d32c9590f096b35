package schema

// SystemHistoryTraceTable represents the 'system.historytrace' table
type SystemHistoryTraceTable struct {
	Table      string
	ID         string
	UserID     string
	User       string
	Action     string
	EntityType string
	EntityID   string
	Changes    string
	CreatedAt  string
}

// SystemHistoryTrace is the schema definition for system.historytrace
var SystemHistoryTrace = SystemHistoryTraceTable{
	Table:      "system.historytrace",
	ID:         "id",
	UserID:     "userid",
	User:       "actor",
	Action:     "action",
	EntityType: "entitytype",
	EntityID:   "entityid",
	Changes:    "changes",
	CreatedAt:  "createdat",
}

// Columns returns all standard column names
func (t SystemHistoryTraceTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.User, t.Action, t.EntityType, t.EntityID, t.Changes, t.CreatedAt,
	}
}
