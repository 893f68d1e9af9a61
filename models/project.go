package models

import "strings"

// SchemaVersion is stamped on every document written by the gateway.
const SchemaVersion = 1

// Project is a land development project record.
// ID is assigned by the store and is opaque to clients: a hex ObjectID for
// the Mongo and memory stores, a UUID for the Postgres store.
type Project struct {
	ID            string      `json:"_id" bson:"-"`
	SchemaVersion int         `json:"schema_version" bson:"schema_version"`
	CompanyID     string      `json:"company_id" bson:"company_id"`
	ProjectID     string      `json:"project_id" bson:"project_id"`
	Name          string      `json:"name" bson:"name"`
	Address       Address     `json:"address" bson:"address"`
	Landmark      string      `json:"landmark" bson:"landmark"`
	Coordinates   Coordinates `json:"coordinates" bson:"coordinates"`
	OriginalOwner Owner       `json:"original_owner" bson:"original_owner"`

	PurchaseScheme      string `json:"purchase_scheme" bson:"purchase_scheme"`
	TitleInformation    string `json:"title_information" bson:"title_information"`
	LegalDocumentation  string `json:"legal_documentation" bson:"legal_documentation"`
	Restrictions        string `json:"restrictions" bson:"restrictions"`
	TerraneInformation  string `json:"terrane_information" bson:"terrane_information"`
	TotalNumberOfLots   string `json:"total_number_of_lots" bson:"total_number_of_lots"`
	DateBought          string `json:"date_bought" bson:"date_bought"`
	DateBeginSelling    string `json:"date_begin_selling" bson:"date_begin_selling"`
	DateBeginGrading    string `json:"date_begin_grading" bson:"date_begin_grading"`
	InvestmentAmount    string `json:"investment_amount" bson:"investment_amount"`
	GeographicLayerFile string `json:"geographic_layer_file" bson:"geographic_layer_file"`
	BulkDiscountScheme  string `json:"bulk_discount_scheme" bson:"bulk_discount_scheme"`
	LTS                 string `json:"LTS" bson:"LTS"`
}

type Address struct {
	Address1 string `json:"address1" bson:"address1"`
	Address2 string `json:"address2" bson:"address2"`
	Region   string `json:"region" bson:"region"`
	Province string `json:"province" bson:"province"`
	City     string `json:"city" bson:"city"`
	Barangay string `json:"barangay" bson:"barangay"`
	Zip      string `json:"zip" bson:"zip"`
}

type Coordinates struct {
	Latitude  string `json:"latitude" bson:"latitude"`
	Longitude string `json:"longitude" bson:"longitude"`
}

// Owner is the original owner of the land.
type Owner struct {
	LastName    string      `json:"last_name" bson:"last_name"`
	FirstName   string      `json:"first_name" bson:"first_name"`
	MiddleName  string      `json:"middle_name" bson:"middle_name"`
	Email       string      `json:"email" bson:"email"`
	Phone       string      `json:"phone" bson:"phone"`
	SocialMedia SocialMedia `json:"social_media" bson:"social_media"`
}

type SocialMedia struct {
	Instagram string `json:"instagram" bson:"instagram"`
	Facebook  string `json:"facebook" bson:"facebook"`
	WeChat    string `json:"wechat" bson:"wechat"`
	Viber     string `json:"viber" bson:"viber"`
	Line      string `json:"line" bson:"line"`
	WhatsApp  string `json:"whatsapp" bson:"whatsapp"`
}

// Parts returns the address components in display order.
func (a Address) Parts() []string {
	return []string{a.Address1, a.Address2, a.Region, a.Province, a.City, a.Barangay, a.Zip}
}

// AddressLine is the single-line address shown in project listings.
func (p Project) AddressLine() string {
	parts := make([]string, 0, 7)
	for _, part := range p.Address.Parts() {
		if s := strings.TrimSpace(part); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// InsertResult mirrors the document store's insert acknowledgment.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// UpdateResult mirrors the document store's update acknowledgment.
type UpdateResult struct {
	Acknowledged  bool    `json:"acknowledged"`
	MatchedCount  int64   `json:"matchedCount"`
	ModifiedCount int64   `json:"modifiedCount"`
	UpsertedCount int64   `json:"upsertedCount"`
	UpsertedID    *string `json:"upsertedId"`
}

// DeleteResult mirrors the document store's delete acknowledgment.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
