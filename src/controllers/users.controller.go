package controllers

import (
	"log"
	"net/http"
	"triphub/src/middlewares"
	"triphub/src/models"
	"triphub/src/types"
	"triphub/src/utils"

	"github.com/gin-gonic/gin"
)

// RegisterUser mirrors the verified identity into the users table. The
// role is never taken from the request.
func (a *API) RegisterUser(ctx *gin.Context) (*models.User, int, error) {
	var body types.RegisterUserRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	identity := middlewares.GetIdentity(ctx)
	user := &models.User{
		Name:  body.Name,
		Email: identity.Email,
		Image: body.Image,
		Role:  types.ROLE_USER,
	}
	if err := a.Store.UpsertUser(ctx.Request.Context(), user); err != nil {
		log.Printf("Error registering user %s: %s\n", identity.Email, err.Error())
		return nil, utils.StatusFor(err), err
	}
	return user, http.StatusOK, nil
}

func (a *API) UserRole(ctx *gin.Context) (types.Role, int, error) {
	identity := middlewares.GetIdentity(ctx)
	return identity.Role, http.StatusOK, nil
}

func (a *API) ListUsers(ctx *gin.Context) ([]models.User, int, error) {
	users, err := a.Store.ListUsers(ctx.Request.Context())
	if err != nil {
		return nil, utils.StatusFor(err), err
	}
	return users, http.StatusOK, nil
}
