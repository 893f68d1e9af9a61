package webui

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"lotbook/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Gateway is the subset of Client the views use.
type Gateway interface {
	List(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	Create(ctx context.Context, in models.ProjectInput) (*models.InsertResult, error)
	Update(ctx context.Context, id string, in models.ProjectInput) (*models.UpdateResult, error)
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)
}

const (
	noticeNotFound   = "not_found"
	noticeLoadFailed = "load_failed"
)

var notices = map[string]string{
	noticeNotFound:   "That project no longer exists.",
	noticeLoadFailed: "Could not load the project. Try again later.",
}

var errGone = errors.New("project no longer exists")

// UI serves the project list and the add/edit form.
type UI struct {
	gateway Gateway
	logger  *zap.Logger
}

func New(gateway Gateway, logger *zap.Logger) *UI {
	return &UI{gateway: gateway, logger: logger}
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// Register attaches the UI routes. The engine must have the page templates
// installed with SetHTMLTemplate.
func (u *UI) Register(r gin.IRouter) {
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/projects") })
	r.GET("/projects", u.list)
	r.GET("/projects/add", u.add)
	r.GET("/projects/edit/:id", u.edit)
	r.POST("/projects/save", u.save)
	r.POST("/projects/delete/:id", u.delete)
}

type listRow struct {
	ID        string
	CompanyID string
	ProjectID string
	Name      string
	Address   string
	Landmark  string
}

type listPage struct {
	Rows   []listRow
	Error  string
	Notice string
}

type formPage struct {
	ID       string
	IsNew    bool
	Sections []Section
	Error    string
}

func (u *UI) list(c *gin.Context) {
	page := listPage{Notice: notices[c.Query("notice")]}
	u.renderList(c, http.StatusOK, page)
}

// renderList re-fetches the records so the page reflects the store.
func (u *UI) renderList(c *gin.Context, status int, page listPage) {
	projects, err := u.gateway.List(c.Request.Context())
	if err != nil {
		u.logger.Error("failed to list projects", zap.Error(err))
		if page.Error == "" {
			page.Error = "Could not load projects. Try again later."
		}
		c.HTML(http.StatusBadGateway, "list.html", page)
		return
	}

	page.Rows = make([]listRow, 0, len(projects))
	for _, p := range projects {
		page.Rows = append(page.Rows, listRow{
			ID:        p.ID,
			CompanyID: p.CompanyID,
			ProjectID: p.ProjectID,
			Name:      p.Name,
			Address:   p.AddressLine(),
			Landmark:  p.Landmark,
		})
	}
	c.HTML(status, "list.html", page)
}

func (u *UI) add(c *gin.Context) {
	u.renderForm(c, http.StatusOK, NewForm(), "")
}

func (u *UI) edit(c *gin.Context) {
	id := c.Param("id")
	p, err := u.gateway.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			u.logger.Warn("project not found", zap.String("id", id))
			c.Redirect(http.StatusSeeOther, "/projects?notice="+noticeNotFound)
			return
		}
		// Never render a form bound to id without the record's data.
		u.logger.Error("failed to load project", zap.String("id", id), zap.Error(err))
		c.Redirect(http.StatusSeeOther, "/projects?notice="+noticeLoadFailed)
		return
	}

	u.renderForm(c, http.StatusOK, FormFromRecord(*p), "")
}

func (u *UI) save(c *gin.Context) {
	f := formFromPost(c)
	ctx := c.Request.Context()

	var err error
	if f.IsNew() {
		_, err = u.gateway.Create(ctx, f.Input())
	} else {
		var res *models.UpdateResult
		res, err = u.gateway.Update(ctx, f.ID, f.Input())
		if err == nil && res.MatchedCount == 0 {
			err = errGone
		}
	}

	if err != nil {
		u.logger.Error("failed to save project", zap.String("id", f.ID), zap.Error(err))
		u.renderForm(c, statusFor(err), f, saveErrorMessage(err))
		return
	}

	c.Redirect(http.StatusSeeOther, "/projects")
}

func (u *UI) delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := u.gateway.Delete(c.Request.Context(), id); err != nil {
		u.logger.Error("failed to delete project", zap.String("id", id), zap.Error(err))
		u.renderList(c, statusFor(err), listPage{Error: "Could not delete the project. It is still listed below."})
		return
	}

	c.Redirect(http.StatusSeeOther, "/projects")
}

func (u *UI) renderForm(c *gin.Context, status int, f *Form, errMsg string) {
	c.HTML(status, "form.html", formPage{
		ID:       f.ID,
		IsNew:    f.IsNew(),
		Sections: f.Sections(),
		Error:    errMsg,
	})
}

// formFromPost builds a fresh form from the posted fields. Inputs that are
// not part of the form are ignored.
func formFromPost(c *gin.Context) *Form {
	f := NewForm()
	f.ID = c.PostForm("id")
	for _, field := range Fields() {
		if v, ok := c.GetPostForm(field.Path); ok {
			_ = f.Set(field.Path, v)
		}
	}
	return f
}

func statusFor(err error) int {
	var se *StatusError
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, errGone):
		return http.StatusNotFound
	case errors.As(err, &se) && se.Code < 500:
		return se.Code
	default:
		return http.StatusBadGateway
	}
}

func saveErrorMessage(err error) string {
	var se *StatusError
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, errGone):
		return "This project no longer exists. It may have been deleted."
	case errors.As(err, &se) && se.Code < 500:
		return "The project was rejected: " + se.Body
	default:
		return "The project was not saved. Try again later."
	}
}
