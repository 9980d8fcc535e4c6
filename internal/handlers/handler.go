package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"hospital-admin/internal/apperror"
	"hospital-admin/internal/middleware"
	"hospital-admin/internal/models"
	"hospital-admin/internal/render"
	"hospital-admin/internal/session"
	"hospital-admin/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const messageStoreFailure = "Error al procesar la solicitud"

// Options are the tunables handlers read at request time.
type Options struct {
	UploadDir      string
	MaxUploadBytes int64
	BcryptCost     int
}

// Handler holds the dependencies shared by every route.
type Handler struct {
	db       *gorm.DB
	sessions *session.Manager
	log      *zap.Logger
	opts     Options
}

func New(db *gorm.DB, sessions *session.Manager, log *zap.Logger, opts Options) *Handler {
	return &Handler{db: db, sessions: sessions, log: log, opts: opts}
}

// store returns the DB handle bound to the request context so a request
// deadline cancels the query.
func (h *Handler) store(c *gin.Context) *gorm.DB {
	return h.db.WithContext(c.Request.Context())
}

func (h *Handler) page(c *gin.Context, status int, name, title string, data any) {
	p := render.Page{Title: title, Data: data}
	if identity, ok := middleware.CurrentIdentity(c); ok {
		p.Role = identity.Role
		p.Username = identity.Username
		p.Nav = render.Nav(identity.Role)
	}
	c.HTML(status, name, p)
}

func (h *Handler) message(c *gin.Context, status int, heading, text, back string) {
	h.page(c, status, "mensaje", heading, render.Message{Heading: heading, Text: text, Back: back})
}

func (h *Handler) table(c *gin.Context, heading string, columns []string, rows [][]any) {
	h.page(c, http.StatusOK, "tabla", heading, render.Table{Heading: heading, Columns: columns, Rows: rows, Back: "/"})
}

// fail renders err as an error page. Store failures are logged and shown with
// a generic text; classified errors show their own message.
func (h *Handler) fail(c *gin.Context, op string, err error, back string) {
	status := apperror.Status(err)
	text := apperror.MessageOf(err, messageStoreFailure)
	if status >= http.StatusInternalServerError {
		h.log.Error(op, zap.String("path", c.Request.URL.Path), zap.Error(err))
		text = messageStoreFailure
	} else {
		h.log.Debug(op, zap.String("kind", apperror.KindOf(err).String()), zap.Error(err))
	}
	h.message(c, status, "Error", text, back)
}

// failJSON is fail for the JSON endpoints.
func (h *Handler) failJSON(c *gin.Context, op string, err error) {
	status := apperror.Status(err)
	text := apperror.MessageOf(err, messageStoreFailure)
	if status >= http.StatusInternalServerError {
		h.log.Error(op, zap.String("path", c.Request.URL.Path), zap.Error(err))
		text = messageStoreFailure
	}
	utils.JSONError(c, status, text)
}

// bindForm binds the posted form into obj and names every missing required field.
func bindForm(c *gin.Context, obj any) error {
	err := c.ShouldBind(obj)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Wrap(apperror.KindValidation, "Formulario inválido", err)
	}
	t := reflect.Indirect(reflect.ValueOf(obj)).Type()
	names := lo.Map(verrs, func(fe validator.FieldError, _ int) string {
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if tag := f.Tag.Get("form"); tag != "" {
				return tag
			}
		}
		return fe.Field()
	})
	return apperror.Validation("Faltan datos en el formulario: " + strings.Join(names, ", "))
}

func (h *Handler) identity(c *gin.Context) session.Identity {
	identity, _ := middleware.CurrentIdentity(c)
	return identity
}

func canCreatePatients(role models.Role) bool {
	return role == models.RoleAdmin || role == models.RoleMedico
}
