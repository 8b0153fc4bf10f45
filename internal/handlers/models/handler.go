package models

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"slotbook/infras/otel"
	"slotbook/internal/domains/models/model/dto"
	"slotbook/internal/domains/models/service"
	"slotbook/shared/constant"
	gDto "slotbook/shared/dto"
	"slotbook/shared/validator"
	"slotbook/transport/http/response"
)

type Handler struct {
	service service.Model
	otel    otel.Otel
}

func New(service service.Model, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/models", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateModel)
		routerGroup.Get("/", handler.GetModels)
		routerGroup.Get("/{id}", handler.GetModelByID)
		routerGroup.Put("/{id}", handler.UpdateModel)
		routerGroup.Delete("/{id}", handler.DeleteModel)
	})
}

// CreateModel handles the creation of a new model.
// @Summary Create a new model
// @Tags Model
// @Accept json
// @Produce json
// @Param request body dto.CreateModelRequest true "Create Model Request"
// @Success 201 {object} dto.ModelResponse
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/models [post]
// @Security BearerAuth
func (handler *Handler) CreateModel(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateModel")
	defer scope.End()

	req := dto.CreateModelRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create model")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetModels lists models.
// @Summary Get all models
// @Tags Model
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} dto.GetModelsResponse
// @Failure 400 {object} response.Error
// @Router /v1/models [get]
// @Security BearerAuth
func (handler *Handler) GetModels(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetModels")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get models")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetModelByID returns one model.
// @Summary Get model by ID
// @Tags Model
// @Produce json
// @Param id path string true "Model ID"
// @Success 200 {object} dto.ModelResponse
// @Failure 404 {object} response.Error
// @Router /v1/models/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetModelByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetModelByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	if err := validator.ValidateID(id); err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateModel patches a model.
// @Summary Update model
// @Tags Model
// @Accept json
// @Produce json
// @Param id path string true "Model ID"
// @Param request body dto.UpdateModelRequest true "Update Model Request"
// @Success 200 {object} dto.ModelResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/models/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateModel(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateModel")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	if err := validator.ValidateID(id); err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateModelRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update model")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteModel removes a model. Refused while slots reference it.
// @Summary Delete model
// @Tags Model
// @Produce json
// @Param id path string true "Model ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/models/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteModel(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteModel")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	if err := validator.ValidateID(id); err != nil {
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete model")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Model deleted successfully")
}
