package schema

// CoreClientTable represents the 'core.client' table
type CoreClientTable struct {
	Table               string
	ID                  string
	Name                string
	CNPJ                string
	CEP                 string
	Street              string
	Number              string
	Complement          string
	City                string
	Neighborhood        string
	UF                  string
	Observations        string
	RegionID            string
	GroupID             string
	ContactName         string
	ContactPhone        string
	ProvideMeal         string
	CommercialCondition string
	BranchID            string
	IsDeleted           string
	CreatedAt           string
	UpdatedAt           string
}

// CoreClient is the schema definition for core.client
var CoreClient = CoreClientTable{
	Table:               "core.client",
	ID:                  "id",
	Name:                "name",
	CNPJ:                "cnpj",
	CEP:                 "cep",
	Street:              "street",
	Number:              "number",
	Complement:          "complement",
	City:                "city",
	Neighborhood:        "neighborhood",
	UF:                  "uf",
	Observations:        "observations",
	RegionID:            "regionid",
	GroupID:             "groupid",
	ContactName:         "contactname",
	ContactPhone:        "contactphone",
	ProvideMeal:         "providemeal",
	CommercialCondition: "commercialcondition",
	BranchID:            "branchid",
	IsDeleted:           "isdeleted",
	CreatedAt:           "createdat",
	UpdatedAt:           "updatedat",
}

// Columns returns all standard column names
func (t CoreClientTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.CNPJ, t.CEP, t.Street, t.Number, t.Complement, t.City,
		t.Neighborhood, t.UF, t.Observations, t.RegionID, t.GroupID, t.ContactName,
		t.ContactPhone, t.ProvideMeal, t.CommercialCondition, t.BranchID, t.IsDeleted,
		t.CreatedAt, t.UpdatedAt,
	}
}
