package handlers

import (
	"errors"
	"net/http"

	"hospital-admin/internal/apperror"
	"hospital-admin/internal/models"
	"hospital-admin/internal/render"
	"hospital-admin/internal/session"
	"hospital-admin/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MessageBadCredentials is shown for an unknown user and for a wrong password alike.
const MessageBadCredentials = "Usuario o contraseña incorrectos"

// MessagePasswordTooLong is shown when the password exceeds bcrypt's input limit.
const MessagePasswordTooLong = "La contraseña no puede superar 72 bytes"

func (h *Handler) LoginPage(c *gin.Context) {
	h.page(c, http.StatusOK, "login", "Iniciar sesión", render.AuthPage{})
}

func (h *Handler) RegisterPage(c *gin.Context) {
	h.page(c, http.StatusOK, "registro", "Registro", render.AuthPage{})
}

// Register creates a user whose role comes from the access code.
func (h *Handler) Register(c *gin.Context) {
	var input models.RegisterInput

	// 1. Validate the form
	if err := bindForm(c, &input); err != nil {
		h.page(c, http.StatusBadRequest, "registro", "Registro",
			render.AuthPage{Error: apperror.MessageOf(err, "Formulario inválido"), Username: input.Username})
		return
	}

	// 2. Hash the password outside the transaction
	hashedPassword, err := utils.HashPassword(input.Password, h.opts.BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		h.page(c, http.StatusBadRequest, "registro", "Registro",
			render.AuthPage{Error: MessagePasswordTooLong, Username: input.Username})
		return
	}
	if err != nil {
		h.fail(c, "hash password", apperror.Store("no se pudo procesar la contraseña", err), "/registrar")
		return
	}

	// 3. Resolve the access code and insert the user atomically
	err = h.store(c).Transaction(func(tx *gorm.DB) error {
		var code models.AccessCode
		if err := tx.Select("tipo_usuario").Where("codigo = ?", input.AccessCode).Take(&code).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.New(apperror.KindIntegrity, "tipo de usuario inválido")
			}
			return apperror.Store("no se pudo validar el código de acceso", err)
		}
		if !code.Role.Valid() {
			return apperror.New(apperror.KindIntegrity, "tipo de usuario inválido")
		}

		user := models.User{
			Username:     input.Username,
			PasswordHash: hashedPassword,
			Role:         code.Role,
		}
		if err := tx.Create(&user).Error; err != nil {
			if apperror.IsDuplicateKey(err) {
				return apperror.Wrap(apperror.KindConflict, "el nombre de usuario ya está registrado", err)
			}
			return apperror.Store("no se pudo registrar el usuario", err)
		}
		return nil
	})
	if err != nil {
		h.fail(c, "register user", err, "/registrar")
		return
	}

	// 4. Done
	h.log.Info("user registered", zap.String("username", input.Username))
	c.Redirect(http.StatusSeeOther, "/login")
}

// Login checks the credentials and starts a session.
func (h *Handler) Login(c *gin.Context) {
	var input models.LoginInput

	// 1. Validate the form
	if err := bindForm(c, &input); err != nil {
		h.page(c, http.StatusBadRequest, "login", "Iniciar sesión",
			render.AuthPage{Error: apperror.MessageOf(err, "Formulario inválido"), Username: input.Username})
		return
	}

	// 2. Find the user
	var user models.User
	if err := h.store(c).Where("nombre_usuario = ?", input.Username).Take(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			h.fail(c, "load user", apperror.Store("no se pudo iniciar sesión", err), "/login")
			return
		}
		utils.BurnPasswordCheck(input.Password, h.opts.BcryptCost)
		h.rejectLogin(c, input.Username)
		return
	}

	// 3. Check the password
	if !utils.CheckPassword(input.Password, user.PasswordHash) {
		h.rejectLogin(c, input.Username)
		return
	}

	// 4. Start the session
	identity := session.Identity{ID: user.ID, Username: user.Username, Role: user.Role}
	if err := h.sessions.Issue(c, identity); err != nil {
		h.fail(c, "issue session", apperror.Store("no se pudo iniciar sesión", err), "/login")
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) rejectLogin(c *gin.Context, username string) {
	h.page(c, http.StatusUnauthorized, "login", "Iniciar sesión",
		render.AuthPage{Error: MessageBadCredentials, Username: username})
}

// Logout always ends on the login page, whatever state the cookie was in.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.sessions.Destroy(c); err != nil {
		h.log.Warn("logout", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

// UserRole returns the session role for the client-side scripts.
func (h *Handler) UserRole(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tipo_usuario": h.identity(c).Role})
}

func (h *Handler) Home(c *gin.Context) {
	h.page(c, http.StatusOK, "index", "Inicio", canCreatePatients(h.identity(c).Role))
}
