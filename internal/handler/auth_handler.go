package handler

import (
	"errors"
	"net/http"

	"tradeflow-service/internal/model"
	"tradeflow-service/pkg/database"
	"tradeflow-service/pkg/jwtutil"
	"tradeflow-service/pkg/logger"
	"tradeflow-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterRequest creates a user and, when no company_id is given, a fresh
// company the user becomes the first admin of.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	CompanyID   *uint  `json:"company_id"`
	CompanyName string `json:"company_name"`
	Country     string `json:"country"`
}

// LoginRequest carries user credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /auth/register
func Register(c echo.Context) error {
	log := logger.FromEcho(c)

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request payload"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}
	if req.CompanyID == nil && req.CompanyName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "company_id or company_name is required"})
	}

	db := database.GetDB()

	var existing model.User
	err := db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		prometheus.RecordAuthError("email_taken")
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("User lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Password hashing failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	var user model.User
	err = db.Transaction(func(tx *gorm.DB) error {
		companyID := req.CompanyID
		role := "member"
		if companyID == nil {
			company := model.Company{Name: req.CompanyName, Country: req.Country}
			if err := tx.Create(&company).Error; err != nil {
				return err
			}
			companyID = &company.ID
			role = "admin"
		} else {
			var company model.Company
			if err := tx.First(&company, *companyID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return echo.NewHTTPError(http.StatusBadRequest, "company not found")
				}
				return err
			}
		}

		user = model.User{
			Email:     req.Email,
			Password:  string(hashed),
			FullName:  req.FullName,
			CompanyID: companyID,
			Role:      role,
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return c.JSON(httpErr.Code, echo.Map{"error": httpErr.Message})
		}
		log.Error("Registration failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	log.Info("User registered",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email))

	return c.JSON(http.StatusCreated, user)
}

// Login handles POST /auth/login
func Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordAuthAttempt()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request payload"})
	}

	db := database.GetDB()

	var user model.User
	err := db.Where("email = ?", req.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prometheus.RecordAuthError("unknown_email")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if err != nil {
		log.Error("User lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		prometheus.RecordAuthError("bad_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	companyName := ""
	if user.CompanyID != nil {
		var company model.Company
		if err := db.First(&company, *user.CompanyID).Error; err == nil {
			companyName = company.Name
		}
	}

	token, err := jwtutil.GenerateToken(user.Email, user.ID, user.CompanyID, companyName, user.Role)
	if err != nil {
		log.Error("Token generation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	log.Info("User logged in",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user":  user,
	})
}
