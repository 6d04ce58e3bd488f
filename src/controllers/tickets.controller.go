package controllers

import (
	"fmt"
	"log"
	"net/http"
	"triphub/src/middlewares"
	"triphub/src/models"
	"triphub/src/types"
	"triphub/src/utils"

	"github.com/gin-gonic/gin"
)

func (a *API) ListTickets(ctx *gin.Context) ([]models.Ticket, int, error) {
	var filters types.TicketQueryFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		return nil, http.StatusBadRequest, err
	}
	tickets, err := a.Store.ListTickets(ctx.Request.Context(), filters)
	if err != nil {
		return nil, utils.StatusFor(err), err
	}
	return tickets, http.StatusOK, nil
}

func (a *API) LatestTickets(ctx *gin.Context) ([]models.Ticket, int, error) {
	tickets, err := a.Store.LatestTickets(ctx.Request.Context(), types.MaxAdvertisedTickets)
	if err != nil {
		return nil, utils.StatusFor(err), err
	}
	return tickets, http.StatusOK, nil
}

func (a *API) AdvertisedTickets(ctx *gin.Context) ([]models.Ticket, int, error) {
	tickets, err := a.Store.AdvertisedTickets(ctx.Request.Context())
	if err != nil {
		return nil, utils.StatusFor(err), err
	}
	return tickets, http.StatusOK, nil
}

func (a *API) GetTicket(ctx *gin.Context) (*models.Ticket, int, error) {
	var params types.SimpleRequestParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		return nil, http.StatusBadRequest, err
	}
	ticket, err := a.Store.FindTicket(ctx.Request.Context(), params.ID)
	if err != nil {
		return nil, utils.StatusFor(err), err
	}
	return ticket, http.StatusOK, nil
}

func (a *API) CreateTicket(ctx *gin.Context) (*models.Ticket, int, error) {
	var body types.CreateTicketRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	identity := middlewares.GetIdentity(ctx)
	vendor, err := a.Store.FindVendorByEmail(ctx.Request.Context(), identity.Email)
	if err != nil {
		return nil, utils.StatusFor(err), err
	}
	ticket := &models.Ticket{
		Title:         body.Title,
		From:          body.From,
		To:            body.To,
		TransportType: body.TransportType,
		Perks:         body.Perks,
		Image:         body.Image,
		Vendor:        models.VendorRef{ID: vendor.ID, Email: vendor.Email, Name: vendor.Name},
		Status:        types.TICKET_PENDING,
		IsVisible:     true,
		Price:         body.Price,
		Quantity:      body.Quantity,
		DepartureDate: body.DepartureDate,
		DepartureTime: body.DepartureTime,
	}
	if err := a.Store.CreateTicket(ctx.Request.Context(), ticket); err != nil {
		log.Printf("Error creating ticket: %s\n", err.Error())
		return nil, utils.StatusFor(err), err
	}
	return ticket, http.StatusCreated, nil
}

func (a *API) UpdateTicket(ctx *gin.Context) (*models.Ticket, int, error) {
	var params types.SimpleRequestParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		return nil, http.StatusBadRequest, err
	}
	var body types.UpdateTicketRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	updates := map[string]any{}
	if body.Price != nil {
		updates["price"] = *body.Price
	}
	if body.Quantity != nil {
		updates["quantity"] = *body.Quantity
	}
	if body.DepartureDate != nil {
		updates["departure_date"] = *body.DepartureDate
	}
	if body.DepartureTime != nil {
		updates["departure_time"] = *body.DepartureTime
	}
	identity := middlewares.GetIdentity(ctx)
	ticket, err := a.Store.UpdateTicket(ctx.Request.Context(), params.ID, identity.Email, updates)
	if err != nil {
		return nil, utils.StatusFor(err), err
	}
	return ticket, http.StatusOK, nil
}

func (a *API) DeleteTicket(ctx *gin.Context) (int, error) {
	var params types.SimpleRequestParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		return http.StatusBadRequest, err
	}
	identity := middlewares.GetIdentity(ctx)
	if err := a.Store.DeleteTicket(ctx.Request.Context(), params.ID, identity.Email); err != nil {
		return utils.StatusFor(err), err
	}
	return http.StatusNoContent, nil
}

func (a *API) SetTicketStatus(ctx *gin.Context) (int, error) {
	var params types.SimpleRequestParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		return http.StatusBadRequest, err
	}
	var body types.TicketStatusRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return http.StatusBadRequest, err
	}
	if err := a.Store.SetTicketStatus(ctx.Request.Context(), params.ID, body.Status); err != nil {
		return utils.StatusFor(err), err
	}
	return http.StatusOK, nil
}

func (a *API) SetAdvertised(ctx *gin.Context) (int, error) {
	var params types.SimpleRequestParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		return http.StatusBadRequest, err
	}
	var body types.AdvertiseRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return http.StatusBadRequest, err
	}
	if err := a.Advertiser.SetAdvertised(ctx.Request.Context(), params.ID, *body.IsAdvertised); err != nil {
		log.Printf("Error advertising ticket %d: %s\n", params.ID, err.Error())
		return utils.StatusFor(err), fmt.Errorf("ticket %d: %w", params.ID, err)
	}
	return http.StatusOK, nil
}
