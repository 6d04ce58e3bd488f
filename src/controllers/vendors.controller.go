package controllers

import (
	"log"
	"net/http"
	"triphub/src/middlewares"
	"triphub/src/models"
	"triphub/src/moderation"
	"triphub/src/types"
	"triphub/src/utils"

	awslib "triphub/src/lib/aws"

	"github.com/gin-gonic/gin"
)

// ApplyVendor files a pending vendor application for the caller. The user
// row is created if missing so a later approval can promote it.
func (a *API) ApplyVendor(ctx *gin.Context) (*models.Vendor, int, error) {
	var body types.CreateVendorRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	identity := middlewares.GetIdentity(ctx)
	if err := a.Store.EnsureUser(ctx.Request.Context(), identity.Email); err != nil {
		return nil, utils.StatusFor(err), err
	}
	vendor := &models.Vendor{
		Name:   body.Name,
		Slug:   utils.VendorSlug(body.Name),
		Image:  body.Image,
		Email:  identity.Email,
		Status: types.VENDOR_PENDING,
	}
	if err := a.Store.CreateVendor(ctx.Request.Context(), vendor); err != nil {
		log.Printf("Error creating vendor application: %s\n", err.Error())
		return nil, utils.StatusFor(err), err
	}
	return vendor, http.StatusCreated, nil
}

func (a *API) ListVendors(ctx *gin.Context) ([]models.Vendor, int, error) {
	vendors, err := a.Store.ListVendors(ctx.Request.Context(), ctx.Query("status"))
	if err != nil {
		return nil, utils.StatusFor(err), err
	}
	return vendors, http.StatusOK, nil
}

func (a *API) SetVendorStatus(ctx *gin.Context) (*models.Vendor, int, error) {
	var params types.SimpleRequestParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		return nil, http.StatusBadRequest, err
	}
	var body types.VendorStatusRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	vendor, err := a.Approver.SetStatus(ctx.Request.Context(), params.ID, body.Status)
	if err != nil {
		log.Printf("[VendorStatus] vendor %d: %s\n", params.ID, err.Error())
		return nil, utils.StatusFor(err), err
	}
	return vendor, http.StatusOK, nil
}

func (a *API) FlagFraud(ctx *gin.Context) (*moderation.CascadeResult, int, error) {
	var body types.FraudRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	result, err := a.Cascade.FlagFraud(ctx.Request.Context(), body.Email)
	if err != nil {
		log.Printf("[Fraud] %s: %s\n", body.Email, err.Error())
		if result != nil {
			return result, http.StatusInternalServerError, err
		}
		return nil, utils.StatusFor(err), err
	}
	return result, http.StatusOK, nil
}

func (a *API) VendorImageURL(ctx *gin.Context) (*awslib.UploadURL, int, error) {
	var body types.ImageUploadRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	identity := middlewares.GetIdentity(ctx)
	upload, err := a.Uploader(ctx.Request.Context(), "vendors/"+utils.VendorSlug(identity.Email), body.ContentType)
	if err != nil {
		log.Printf("Error presigning upload: %s\n", err.Error())
		return nil, http.StatusInternalServerError, err
	}
	return upload, http.StatusOK, nil
}
