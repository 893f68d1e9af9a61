package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// ErrNotObject is returned by DecodeInput when the body is valid JSON but
// not an object (null, an array or a bare scalar).
var ErrNotObject = errors.New("body is not a JSON object")

// ProjectInput is the body accepted by the create and update endpoints.
//
// Address can be sent either as the nested "address" object or as the flat
// address1..zip keys older form clients post. Non-empty flat keys win over
// the nested object.
type ProjectInput struct {
	CompanyID string `json:"company_id"`
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Landmark  string `json:"landmark"`

	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	Region   string `json:"region"`
	Province string `json:"province"`
	City     string `json:"city"`
	Barangay string `json:"barangay"`
	Zip      string `json:"zip"`

	Address       *Address     `json:"address,omitempty"`
	Coordinates   *Coordinates `json:"coordinates,omitempty"`
	OriginalOwner *Owner       `json:"original_owner,omitempty"`

	PurchaseScheme      string `json:"purchase_scheme"`
	TitleInformation    string `json:"title_information"`
	LegalDocumentation  string `json:"legal_documentation"`
	Restrictions        string `json:"restrictions"`
	TerraneInformation  string `json:"terrane_information"`
	TotalNumberOfLots   string `json:"total_number_of_lots"`
	DateBought          string `json:"date_bought"`
	DateBeginSelling    string `json:"date_begin_selling"`
	DateBeginGrading    string `json:"date_begin_grading"`
	InvestmentAmount    string `json:"investment_amount"`
	GeographicLayerFile string `json:"geographic_layer_file"`
	BulkDiscountScheme  string `json:"bulk_discount_scheme"`
	LTS                 string `json:"LTS"`
}

// MapOptions controls how a ProjectInput becomes a stored document.
type MapOptions struct {
	// LegacyPlaceholders replaces every field outside the allow-list
	// (company_id, project_id, name, address, landmark) with its literal
	// placeholder string, the way the first version of the gateway stored
	// records.
	LegacyPlaceholders bool
}

// FromInput maps a write payload to the document that gets stored.
// The returned Project has no ID.
func FromInput(in ProjectInput, opts MapOptions) Project {
	p := Project{
		SchemaVersion: SchemaVersion,
		CompanyID:     in.CompanyID,
		ProjectID:     in.ProjectID,
		Name:          in.Name,
		Address:       in.address(),
		Landmark:      in.Landmark,

		PurchaseScheme:      in.PurchaseScheme,
		TitleInformation:    in.TitleInformation,
		LegalDocumentation:  in.LegalDocumentation,
		Restrictions:        in.Restrictions,
		TerraneInformation:  in.TerraneInformation,
		TotalNumberOfLots:   in.TotalNumberOfLots,
		DateBought:          in.DateBought,
		DateBeginSelling:    in.DateBeginSelling,
		DateBeginGrading:    in.DateBeginGrading,
		InvestmentAmount:    in.InvestmentAmount,
		GeographicLayerFile: in.GeographicLayerFile,
		BulkDiscountScheme:  in.BulkDiscountScheme,
		LTS:                 in.LTS,
	}
	if in.Coordinates != nil {
		p.Coordinates = *in.Coordinates
	}
	if in.OriginalOwner != nil {
		p.OriginalOwner = *in.OriginalOwner
	}

	if opts.LegacyPlaceholders {
		legacy := Placeholders()
		legacy.CompanyID = p.CompanyID
		legacy.ProjectID = p.ProjectID
		legacy.Name = p.Name
		legacy.Address = p.Address
		legacy.Landmark = p.Landmark
		return legacy
	}
	return p
}

func (in ProjectInput) address() Address {
	var a Address
	if in.Address != nil {
		a = *in.Address
	}
	override(&a.Address1, in.Address1)
	override(&a.Address2, in.Address2)
	override(&a.Region, in.Region)
	override(&a.Province, in.Province)
	override(&a.City, in.City)
	override(&a.Barangay, in.Barangay)
	override(&a.Zip, in.Zip)
	return a
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Placeholders returns a document whose non-allow-listed fields hold their
// own key names as values.
func Placeholders() Project {
	return Project{
		SchemaVersion: SchemaVersion,
		Coordinates: Coordinates{
			Latitude:  "latitude",
			Longitude: "longitude",
		},
		OriginalOwner: Owner{
			LastName:   "last_name",
			FirstName:  "first_name",
			MiddleName: "middle_name",
			Email:      "email",
			Phone:      "phone",
			SocialMedia: SocialMedia{
				Instagram: "instagram",
				Facebook:  "facebook",
				WeChat:    "wechat",
				Viber:     "viber",
				Line:      "line",
				WhatsApp:  "whatsapp",
			},
		},
		PurchaseScheme:      "purchase_scheme",
		TitleInformation:    "title_information",
		LegalDocumentation:  "legal_documentation",
		Restrictions:        "restrictions",
		TerraneInformation:  "terrane_information",
		TotalNumberOfLots:   "total_number_of_lots",
		DateBought:          "date_bought",
		DateBeginSelling:    "date_begin_selling",
		DateBeginGrading:    "date_begin_grading",
		InvestmentAmount:    "investment_amount",
		GeographicLayerFile: "geographic_layer_file",
		BulkDiscountScheme:  "bulk_discount_scheme",
		LTS:                 "LTS",
	}
}

// ToInput converts a record back into a write payload carrying both the
// nested address and the flat address keys.
func (p Project) ToInput() ProjectInput {
	addr := p.Address
	coords := p.Coordinates
	owner := p.OriginalOwner
	return ProjectInput{
		CompanyID: p.CompanyID,
		ProjectID: p.ProjectID,
		Name:      p.Name,
		Landmark:  p.Landmark,

		Address1: addr.Address1,
		Address2: addr.Address2,
		Region:   addr.Region,
		Province: addr.Province,
		City:     addr.City,
		Barangay: addr.Barangay,
		Zip:      addr.Zip,

		Address:       &addr,
		Coordinates:   &coords,
		OriginalOwner: &owner,

		PurchaseScheme:      p.PurchaseScheme,
		TitleInformation:    p.TitleInformation,
		LegalDocumentation:  p.LegalDocumentation,
		Restrictions:        p.Restrictions,
		TerraneInformation:  p.TerraneInformation,
		TotalNumberOfLots:   p.TotalNumberOfLots,
		DateBought:          p.DateBought,
		DateBeginSelling:    p.DateBeginSelling,
		DateBeginGrading:    p.DateBeginGrading,
		InvestmentAmount:    p.InvestmentAmount,
		GeographicLayerFile: p.GeographicLayerFile,
		BulkDiscountScheme:  p.BulkDiscountScheme,
		LTS:                 p.LTS,
	}
}

// DecodeInput parses a create or update body. Number and boolean values are
// stored as their text form, so {"zip": 1000} and {"zip": "1000"} map to
// the same record. Values that are neither scalars nor objects where an
// object is expected still fail to decode.
func DecodeInput(body []byte) (ProjectInput, error) {
	var in ProjectInput

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return in, err
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return in, ErrNotObject
	}

	normalized, err := json.Marshal(stringifyScalars(obj))
	if err != nil {
		return in, err
	}
	if err := json.Unmarshal(normalized, &in); err != nil {
		return in, err
	}
	return in, nil
}

func stringifyScalars(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = stringifyScalars(e)
		}
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return v
	}
}
