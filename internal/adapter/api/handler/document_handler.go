package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"gmrportal/internal/adapter/api/middleware"
	"gmrportal/internal/usecase"
	"gmrportal/pkg/errors"
	"gmrportal/pkg/response"
)

type DocumentHandler struct {
	documentUseCase *usecase.DocumentUseCase
	maxUploadBytes  int64
}

func NewDocumentHandler(documentUseCase *usecase.DocumentUseCase, maxUploadBytes int64) *DocumentHandler {
	return &DocumentHandler{
		documentUseCase: documentUseCase,
		maxUploadBytes:  maxUploadBytes,
	}
}

// formUpload pulls the "file" part of a multipart request. The returned
// func closes the part.
func formUpload(c echo.Context, maxBytes int64) (usecase.UploadInput, func(), error) {
	// multipart overhead on top of the file itself
	c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, maxBytes+1<<20)

	file, err := c.FormFile("file")
	if err != nil {
		return usecase.UploadInput{}, nil, errors.BadRequest("File is required", err)
	}
	if file.Size > maxBytes {
		return usecase.UploadInput{}, nil, errors.BadRequest(fmt.Sprintf("File size must be under %dMB", maxBytes/(1024*1024)), nil)
	}

	src, err := file.Open()
	if err != nil {
		return usecase.UploadInput{}, nil, errors.Internal("Failed to open file", err)
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return usecase.UploadInput{
		FileName:    file.Filename,
		Size:        file.Size,
		ContentType: contentType,
		Notes:       c.FormValue("notes"),
		Body:        src,
	}, func() { src.Close() }, nil
}

func (h *DocumentHandler) Upload(c echo.Context) error {
	in, closeFile, err := formUpload(c, h.maxUploadBytes)
	if err != nil {
		return response.Error(c, err)
	}
	defer closeFile()

	doc, err := h.documentUseCase.UploadClientDocument(c.Request().Context(), middleware.UID(c), c.Param("id"), in)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, doc)
}

func (h *DocumentHandler) List(c echo.Context) error {
	docs, err := h.documentUseCase.ListClientDocuments(c.Request().Context(), middleware.UID(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, docs)
}

func (h *DocumentHandler) Delete(c echo.Context) error {
	if err := h.documentUseCase.DeleteClientDocument(c.Request().Context(), middleware.UID(c), c.Param("docId")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Document deleted"})
}

func (h *DocumentHandler) Download(c echo.Context) error {
	dl, err := h.documentUseCase.OpenClientDocument(c.Request().Context(), middleware.UID(c), c.Param("docId"))
	if err != nil {
		return response.Error(c, err)
	}
	return stream(c, dl)
}

func (h *DocumentHandler) Review(c echo.Context) error {
	doc, err := h.documentUseCase.ReviewClientDocument(c.Request().Context(), middleware.UID(c), c.Param("docId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, doc)
}

func (h *DocumentHandler) DownloadDeliverable(c echo.Context) error {
	dl, err := h.documentUseCase.OpenDeliverable(c.Request().Context(), middleware.UID(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return stream(c, dl)
}

func stream(c echo.Context, dl *usecase.Download) error {
	defer dl.Body.Close()

	header := c.Response().Header()
	header.Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", dl.FileName))
	if dl.Size > 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(dl.Size, 10))
	}
	c.Response().Header().Set(echo.HeaderContentType, dl.ContentType)
	c.Response().WriteHeader(http.StatusOK)
	_, err := io.Copy(c.Response(), dl.Body)
	return err
}
