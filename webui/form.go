package webui

import (
	"errors"
	"fmt"
	"lotbook/models"
)

var ErrUnknownField = errors.New("unknown form field")

// Field describes one input of the project form. Path is the dotted JSON
// path of the leaf it edits.
type Field struct {
	Path     string
	Label    string
	Section  string
	Required bool
}

type binding struct {
	Field
	leaf func(p *models.Project) *string
}

const (
	sectionProject = "Project Info"
	sectionAddress = "Address Info"
	sectionCoords  = "Coordinates"
	sectionOwner   = "Original Owner"
	sectionSocial  = "Social Media"
	sectionDetails = "Project Details"
)

var bindings = []binding{
	{Field{"project_id", "Project Id", sectionProject, true}, func(p *models.Project) *string { return &p.ProjectID }},
	{Field{"company_id", "Company", sectionProject, true}, func(p *models.Project) *string { return &p.CompanyID }},
	{Field{"name", "Project Name", sectionProject, true}, func(p *models.Project) *string { return &p.Name }},

	{Field{"address.address1", "Address 1", sectionAddress, true}, func(p *models.Project) *string { return &p.Address.Address1 }},
	{Field{"address.address2", "Address 2", sectionAddress, false}, func(p *models.Project) *string { return &p.Address.Address2 }},
	{Field{"address.region", "Region", sectionAddress, true}, func(p *models.Project) *string { return &p.Address.Region }},
	{Field{"address.province", "Province", sectionAddress, true}, func(p *models.Project) *string { return &p.Address.Province }},
	{Field{"address.city", "City", sectionAddress, true}, func(p *models.Project) *string { return &p.Address.City }},
	{Field{"address.barangay", "Barangay", sectionAddress, true}, func(p *models.Project) *string { return &p.Address.Barangay }},
	{Field{"address.zip", "Zip", sectionAddress, true}, func(p *models.Project) *string { return &p.Address.Zip }},
	{Field{"landmark", "Landmark", sectionAddress, false}, func(p *models.Project) *string { return &p.Landmark }},

	{Field{"coordinates.latitude", "Latitude", sectionCoords, false}, func(p *models.Project) *string { return &p.Coordinates.Latitude }},
	{Field{"coordinates.longitude", "Longitude", sectionCoords, false}, func(p *models.Project) *string { return &p.Coordinates.Longitude }},

	{Field{"original_owner.last_name", "Last Name", sectionOwner, false}, func(p *models.Project) *string { return &p.OriginalOwner.LastName }},
	{Field{"original_owner.first_name", "First Name", sectionOwner, false}, func(p *models.Project) *string { return &p.OriginalOwner.FirstName }},
	{Field{"original_owner.middle_name", "Middle Name", sectionOwner, false}, func(p *models.Project) *string { return &p.OriginalOwner.MiddleName }},
	{Field{"original_owner.email", "Email", sectionOwner, false}, func(p *models.Project) *string { return &p.OriginalOwner.Email }},
	{Field{"original_owner.phone", "Phone", sectionOwner, false}, func(p *models.Project) *string { return &p.OriginalOwner.Phone }},

	{Field{"original_owner.social_media.instagram", "Instagram", sectionSocial, false}, func(p *models.Project) *string { return &p.OriginalOwner.SocialMedia.Instagram }},
	{Field{"original_owner.social_media.facebook", "Facebook", sectionSocial, false}, func(p *models.Project) *string { return &p.OriginalOwner.SocialMedia.Facebook }},
	{Field{"original_owner.social_media.wechat", "WeChat", sectionSocial, false}, func(p *models.Project) *string { return &p.OriginalOwner.SocialMedia.WeChat }},
	{Field{"original_owner.social_media.viber", "Viber", sectionSocial, false}, func(p *models.Project) *string { return &p.OriginalOwner.SocialMedia.Viber }},
	{Field{"original_owner.social_media.line", "Line", sectionSocial, false}, func(p *models.Project) *string { return &p.OriginalOwner.SocialMedia.Line }},
	{Field{"original_owner.social_media.whatsapp", "WhatsApp", sectionSocial, false}, func(p *models.Project) *string { return &p.OriginalOwner.SocialMedia.WhatsApp }},

	{Field{"purchase_scheme", "Purchase Scheme", sectionDetails, false}, func(p *models.Project) *string { return &p.PurchaseScheme }},
	{Field{"title_information", "Title Information", sectionDetails, false}, func(p *models.Project) *string { return &p.TitleInformation }},
	{Field{"legal_documentation", "Legal Documentation", sectionDetails, false}, func(p *models.Project) *string { return &p.LegalDocumentation }},
	{Field{"restrictions", "Restrictions", sectionDetails, false}, func(p *models.Project) *string { return &p.Restrictions }},
	{Field{"terrane_information", "Terrane Information", sectionDetails, false}, func(p *models.Project) *string { return &p.TerraneInformation }},
	{Field{"total_number_of_lots", "Total Number of Lots", sectionDetails, false}, func(p *models.Project) *string { return &p.TotalNumberOfLots }},
	{Field{"date_bought", "Date Bought", sectionDetails, false}, func(p *models.Project) *string { return &p.DateBought }},
	{Field{"date_begin_selling", "Date Begin Selling", sectionDetails, false}, func(p *models.Project) *string { return &p.DateBeginSelling }},
	{Field{"date_begin_grading", "Date Begin Grading", sectionDetails, false}, func(p *models.Project) *string { return &p.DateBeginGrading }},
	{Field{"investment_amount", "Investment Amount", sectionDetails, false}, func(p *models.Project) *string { return &p.InvestmentAmount }},
	{Field{"geographic_layer_file", "Geographic Layer File", sectionDetails, false}, func(p *models.Project) *string { return &p.GeographicLayerFile }},
	{Field{"bulk_discount_scheme", "Bulk Discount Scheme", sectionDetails, false}, func(p *models.Project) *string { return &p.BulkDiscountScheme }},
	{Field{"LTS", "LTS", sectionDetails, false}, func(p *models.Project) *string { return &p.LTS }},
}

var bindingsByPath = func() map[string]binding {
	m := make(map[string]binding, len(bindings))
	for _, b := range bindings {
		m[b.Path] = b
	}
	return m
}()

// Fields lists every bindable leaf in render order.
func Fields() []Field {
	fields := make([]Field, len(bindings))
	for i, b := range bindings {
		fields[i] = b.Field
	}
	return fields
}

// Form is the editable copy of a project held while a user edits it.
// ID is empty for a project that has not been created yet.
type Form struct {
	ID      string
	Project models.Project
}

// NewForm returns a blank form. Each call builds a new value.
func NewForm() *Form {
	return &Form{Project: models.Project{}}
}

// FormFromRecord copies a fetched record into a form.
func FormFromRecord(p models.Project) *Form {
	f := &Form{ID: p.ID, Project: p}
	f.Project.ID = ""
	return f
}

func (f *Form) IsNew() bool {
	return f.ID == ""
}

// Set replaces the leaf at path. Sibling fields are left as they are.
func (f *Form) Set(path, value string) error {
	b, ok := bindingsByPath[path]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, path)
	}
	*b.leaf(&f.Project) = value
	return nil
}

// Get returns the value of the leaf at path.
func (f *Form) Get(path string) (string, error) {
	b, ok := bindingsByPath[path]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownField, path)
	}
	return *b.leaf(&f.Project), nil
}

// Input is the payload submitted to the gateway.
func (f *Form) Input() models.ProjectInput {
	return f.Project.ToInput()
}

// FieldValue is a field with its current value, ready to render.
type FieldValue struct {
	Field
	Value string
}

type Section struct {
	Title  string
	Fields []FieldValue
}

// Sections groups the form's fields by section in render order.
func (f *Form) Sections() []Section {
	var sections []Section
	for _, b := range bindings {
		if len(sections) == 0 || sections[len(sections)-1].Title != b.Section {
			sections = append(sections, Section{Title: b.Section})
		}
		last := &sections[len(sections)-1]
		last.Fields = append(last.Fields, FieldValue{Field: b.Field, Value: *b.leaf(&f.Project)})
	}
	return sections
}
