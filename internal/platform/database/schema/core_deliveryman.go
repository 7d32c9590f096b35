package schema

// CoreDeliverymanTable represents the 'core.deliveryman' table
type CoreDeliverymanTable struct {
	Table        string
	ID           string
	Name         string
	Document     string
	Phone        string
	ContractType string
	MainPixKey   string
	SecondPixKey string
	ThirdPixKey  string
	Agency       string
	Account      string
	VehicleModel string
	VehiclePlate string
	VehicleColor string
	Files        string
	RegionID     string
	BranchID     string
	IsBlocked    string
	IsDeleted    string
	CreatedAt    string
	UpdatedAt    string
}

// CoreDeliveryman is the schema definition for core.deliveryman
var CoreDeliveryman = CoreDeliverymanTable{
	Table:        "core.deliveryman",
	ID:           "id",
	Name:         "name",
	Document:     "document",
	Phone:        "phone",
	ContractType: "contracttype",
	MainPixKey:   "mainpixkey",
	SecondPixKey: "secondpixkey",
	ThirdPixKey:  "thirdpixkey",
	Agency:       "agency",
	Account:      "account",
	VehicleModel: "vehiclemodel",
	VehiclePlate: "vehicleplate",
	VehicleColor: "vehiclecolor",
	Files:        "files",
	RegionID:     "regionid",
	BranchID:     "branchid",
	IsBlocked:    "isblocked",
	IsDeleted:    "isdeleted",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t CoreDeliverymanTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Document, t.Phone, t.ContractType, t.MainPixKey, t.SecondPixKey,
		t.ThirdPixKey, t.Agency, t.Account, t.VehicleModel, t.VehiclePlate, t.VehicleColor,
		t.Files, t.RegionID, t.BranchID, t.IsBlocked, t.IsDeleted, t.CreatedAt, t.UpdatedAt,
	}
}
