package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/farmly/farm-market-api/config"
	"github.com/farmly/farm-market-api/middleware"
	"github.com/farmly/farm-market-api/models"
	"github.com/farmly/farm-market-api/services"
	"github.com/stretchr/testify/assert"
)

// buildImageUpload builds a multipart body with one "image" field
func buildImageUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestUploadFarmAvatar(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	mockS3 := services.NewMockS3Service()
	services.InitImageService(mockS3)

	db.Create(&models.Farm{
		ID: "farm-1", Name: "Green Acres",
		OwnerFirstName: "Ada", OwnerLastName: "Moss",
		OwnerEmail: "ada@example.com", Status: models.FarmActive,
	})

	router := setupTestRouter()
	router.POST("/owner/farm/avatar",
		mockSessionMiddleware("owner-1", "ada@example.com", middleware.RoleOwner),
		UploadFarmAvatar,
	)

	t.Run("stores the avatar", func(t *testing.T) {
		body, contentType := buildImageUpload(t, "barn.png", []byte("png bytes"))
		req, _ := http.NewRequest(http.MethodPost, "/owner/farm/avatar", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		data := response["data"].(map[string]interface{})
		assert.NotEmpty(t, data["avatar_key"])
		assert.NotEmpty(t, data["avatar_url"])

		var farm models.Farm
		db.First(&farm, "id = ?", "farm-1")
		assert.NotNil(t, farm.AvatarKey)
		assert.True(t, mockS3.HasFile(*farm.AvatarKey))
	})

	t.Run("replacing deletes the previous avatar", func(t *testing.T) {
		var before models.Farm
		db.First(&before, "id = ?", "farm-1")
		oldKey := *before.AvatarKey

		body, contentType := buildImageUpload(t, "barn2.png", []byte("png bytes 2"))
		req, _ := http.NewRequest(http.MethodPost, "/owner/farm/avatar", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, mockS3.HasFile(oldKey), "previous avatar should be removed")
	})

	t.Run("rejects non-png files", func(t *testing.T) {
		body, contentType := buildImageUpload(t, "barn.gif", []byte("gif bytes"))
		req, _ := http.NewRequest(http.MethodPost, "/owner/farm/avatar", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "INVALID_FILE_FORMAT", errorData["code"])
	})

	t.Run("missing file", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/owner/farm/avatar", bytes.NewBuffer(nil))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "MISSING_FILE", errorData["code"])
	})

	t.Run("owner without a farm", func(t *testing.T) {
		other := setupTestRouter()
		other.POST("/owner/farm/avatar",
			mockSessionMiddleware("owner-2", "nobody@example.com", middleware.RoleOwner),
			UploadFarmAvatar,
		)

		body, contentType := buildImageUpload(t, "barn.png", []byte("png bytes"))
		req, _ := http.NewRequest(http.MethodPost, "/owner/farm/avatar", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		other.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUploadProductImage(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	mockS3 := services.NewMockS3Service()
	services.InitImageService(mockS3)

	db.Create(&models.Farm{
		ID: "farm-1", Name: "Green Acres",
		OwnerFirstName: "Ada", OwnerLastName: "Moss",
		OwnerEmail: "ada@example.com", Status: models.FarmActive,
	})
	db.Create(&models.SubmittedProduct{Product: models.Product{
		ID: "sub-1", Name: "Honey", Price: dec("8.00"), Category: "grains",
		FarmID: strPtr("farm-1"), Status: models.ProductPending,
	}})
	db.Create(&models.SubmittedProduct{Product: models.Product{
		ID: "sub-2", Name: "Other Farm Jam", Price: dec("6.00"), Category: "fruit",
		FarmID: strPtr("farm-2"), Status: models.ProductPending,
	}})

	router := setupTestRouter()
	router.POST("/owner/products/:id/image",
		mockSessionMiddleware("owner-1", "ada@example.com", middleware.RoleOwner),
		UploadProductImage,
	)

	t.Run("stores the product photo", func(t *testing.T) {
		body, contentType := buildImageUpload(t, "honey.png", []byte("png bytes"))
		req, _ := http.NewRequest(http.MethodPost, "/owner/products/sub-1/image", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var submission models.SubmittedProduct
		db.First(&submission, "id = ?", "sub-1")
		assert.NotNil(t, submission.ImageKey)
		assert.True(t, mockS3.HasFile(*submission.ImageKey))
	})

	t.Run("cannot tag another farm's submission", func(t *testing.T) {
		body, contentType := buildImageUpload(t, "jam.png", []byte("png bytes"))
		req, _ := http.NewRequest(http.MethodPost, "/owner/products/sub-2/image", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetUploadedImage_LocalBackend(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	// Non-default upload directory, as set by UPLOAD_DIR in deployments
	uploadDir := t.TempDir()
	services.InitLocalImageService(uploadDir)

	db.Create(&models.Farm{
		ID: "farm-1", Name: "Green Acres",
		OwnerFirstName: "Ada", OwnerLastName: "Moss",
		OwnerEmail: "ada@example.com", Status: models.FarmActive,
	})

	router := setupTestRouter()
	router.POST("/owner/farm/avatar",
		mockSessionMiddleware("owner-1", "ada@example.com", middleware.RoleOwner),
		UploadFarmAvatar,
	)
	router.GET("/uploads/:filename", GetUploadedImage)

	content := []byte("png bytes")
	body, contentType := buildImageUpload(t, "barn.png", content)
	req, _ := http.NewRequest(http.MethodPost, "/owner/farm/avatar", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var farm models.Farm
	db.First(&farm, "id = ?", "farm-1")
	assert.NotNil(t, farm.AvatarKey)

	t.Run("serves the stored file from the configured directory", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/uploads/"+*farm.AvatarKey, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, content, w.Body.Bytes())
	})

	t.Run("unknown file is a 404", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/uploads/missing.png", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
