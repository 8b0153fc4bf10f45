package size

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"slotbook/infras/otel"
	"slotbook/internal/domains/size/model/dto"
	"slotbook/internal/domains/size/service"
	"slotbook/shared/constant"
	gDto "slotbook/shared/dto"
	"slotbook/shared/validator"
	"slotbook/transport/http/response"
)

type Handler struct {
	service service.Size
	otel    otel.Otel
}

func New(service service.Size, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/sizes", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateSize)
		routerGroup.Get("/", handler.GetSizes)
		routerGroup.Get("/{id}", handler.GetSizeByID)
		routerGroup.Put("/{id}", handler.UpdateSize)
		routerGroup.Delete("/{id}", handler.DeleteSize)
	})
}

// CreateSize handles the creation of a new size.
// @Summary Create a new size
// @Tags Size
// @Accept json
// @Produce json
// @Param request body dto.CreateSizeRequest true "Create Size Request"
// @Success 201 {object} dto.SizeResponse
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/sizes [post]
// @Security BearerAuth
func (handler *Handler) CreateSize(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSize")
	defer scope.End()

	req := dto.CreateSizeRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create size")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetSizes lists sizes.
// @Summary Get all sizes
// @Tags Size
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} dto.GetSizesResponse
// @Failure 400 {object} response.Error
// @Router /v1/sizes [get]
// @Security BearerAuth
func (handler *Handler) GetSizes(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSizes")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get sizes")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetSizeByID returns one size.
// @Summary Get size by ID
// @Tags Size
// @Produce json
// @Param id path string true "Size ID"
// @Success 200 {object} dto.SizeResponse
// @Failure 404 {object} response.Error
// @Router /v1/sizes/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetSizeByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSizeByID")
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

// UpdateSize patches a size.
// @Summary Update size
// @Tags Size
// @Accept json
// @Produce json
// @Param id path string true "Size ID"
// @Param request body dto.UpdateSizeRequest true "Update Size Request"
// @Success 200 {object} dto.SizeResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/sizes/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateSize(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSize")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	if err := validator.ValidateID(id); err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateSizeRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update size")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteSize removes a size. Models referencing it lose their size.
// @Summary Delete size
// @Tags Size
// @Produce json
// @Param id path string true "Size ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/sizes/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSize(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSize")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	if err := validator.ValidateID(id); err != nil {
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete size")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Size deleted successfully")
}
