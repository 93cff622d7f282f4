package controllers

import (
	"errors"
	"time"

	"github.com/decoderzhub/snapreme/app/models"
	"github.com/decoderzhub/snapreme/app/repository"
	"github.com/decoderzhub/snapreme/internal/pkg/session"
	"github.com/decoderzhub/snapreme/internal/pkg/usercontext"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Creator  bool   `json:"creator"`
	Handle   string `json:"handle"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates a fan or creator account and starts a session.
func HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_input", "malformed request body")
	}

	user, err := models.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_input", err.Error())
	}
	if req.Creator {
		user.Role = models.ROLE_CREATOR
	}

	repos := repository.GetGlobalRepositories()
	if _, err := repos.User.GetByEmail(req.Email); err == nil {
		return jsonError(c, fiber.StatusConflict, "email_taken", "an account with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return jsonError(c, fiber.StatusInternalServerError, "internal", "something went wrong")
	}

	if err := repos.User.Create(user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal", "could not create account")
	}

	if req.Creator {
		handle := req.Handle
		if handle == "" {
			handle = req.Name
		}
		creator := &models.Creator{UserID: user.ID, Handle: handle, DisplayName: req.Name}
		if err := repos.Creator.Create(creator); err != nil {
			return jsonError(c, fiber.StatusConflict, "handle_taken", "this handle is already in use")
		}
	}

	if err := startSession(c, user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal", "could not start session")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleLogin verifies credentials and starts a session. Login failures
// are reported without detail on purpose.
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_input", "malformed request body")
	}

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByEmail(req.Email)
	if err != nil || !user.CheckPassword(req.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "login_failed", "email or password is incorrect")
	}
	if !user.IsActive() {
		return jsonError(c, fiber.StatusUnauthorized, "login_failed", "email or password is incorrect")
	}

	now := time.Now()
	user.LastLoginAt = &now
	_ = repos.User.Update(user)

	if err := startSession(c, user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal", "could not start session")
	}
	return c.JSON(user)
}

// HandleLogout destroys the current session.
func HandleLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err == nil {
		_ = sess.Destroy()
	}
	return c.JSON(fiber.Map{"ok": true})
}

func startSession(c *fiber.Ctx, user *models.User) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}
	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUsername, user.Name)
	sess.Set(usercontext.KeyIsAdmin, user.Role == models.ROLE_ADMIN)
	sess.Set(usercontext.KeyIsCreator, user.IsCreator())
	return sess.Save()
}
