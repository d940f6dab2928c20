package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	deliveryhttp "github.com/glosscard/glosscard-backend/internal/delivery/http"
	"github.com/glosscard/glosscard-backend/internal/delivery/http/handler"
	"github.com/glosscard/glosscard-backend/internal/delivery/http/web"
	"github.com/glosscard/glosscard-backend/internal/domain"
	"github.com/glosscard/glosscard-backend/internal/infrastructure/qrcode"
	"github.com/glosscard/glosscard-backend/internal/usecase/cardform"
	"github.com/glosscard/glosscard-backend/internal/usecase/dashboard"
	"github.com/glosscard/glosscard-backend/internal/usecase/payment"
	"github.com/glosscard/glosscard-backend/internal/usecase/profile"
	"github.com/glosscard/glosscard-backend/internal/usecase/upload"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const maxUpload = 5 << 20

var pngMagic = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	engine   *gin.Engine
	profiles *memProfiles
	payments *memPayments
	storage  *memStorage
	network  *toggleNetwork
	tracker  *recorder
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	app := &testApp{
		profiles: &memProfiles{profiles: map[string]*domain.Profile{}},
		payments: &memPayments{payments: map[string]*domain.Payment{}},
		storage:  &memStorage{files: map[string][]byte{}},
		network:  &toggleNetwork{},
		tracker:  &recorder{},
	}

	uploadUC := upload.NewUploadUseCase(app.storage, maxUpload, app.tracker)
	profileUC := profile.NewProfileUseCase(app.profiles, app.network, qrcode.NewGenerator(), nil, app.tracker, "http://localhost:8080")
	paymentUC := payment.NewPaymentUseCase(app.payments, app.network)
	cardFormUC := cardform.NewCardFormUseCase(profileUC, uploadUC, app.tracker)
	dashboardUC := dashboard.NewDashboardUseCase("http://localhost:8080")

	templates, err := web.Templates()
	require.NoError(t, err)

	app.engine = deliveryhttp.NewRouter(
		handler.NewUploadHandler(uploadUC),
		handler.NewProfileHandler(profileUC),
		handler.NewPaymentHandler(paymentUC),
		handler.NewEventHandler(app.tracker),
		handler.NewDashboardHandler(dashboardUC),
		handler.NewPageHandler(profileUC, paymentUC, cardFormUC, dashboardUC, app.tracker, maxUpload),
		handler.NewHealthHandler(app.network),
		templates,
		"",
		zap.NewNop(),
	).Setup()
	return app
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) seedProfile(id, name string) {
	a.profiles.profiles[id] = &domain.Profile{
		ID:        id,
		Name:      name,
		Title:     "Product Designer",
		Expertise: []string{"Figma"},
		Contact:   domain.Contact{Email: "jane@example.com"},
	}
}

// multipartBody builds a form with optional text fields and a single file
// part carrying an explicit content type.
func multipartBody(t *testing.T, fields map[string]string, fileField, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, filename))
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestUpload(t *testing.T) {
	t.Run("stores a valid image", func(t *testing.T) {
		app := newTestApp(t)
		body, ct := multipartBody(t, nil, "file", "Avatar.PNG", "image/png", pngMagic)
		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", ct)

		w := app.do(req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp handler.UploadResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.True(t, strings.HasPrefix(resp.ImageURL, "/uploads/"))
		assert.True(t, strings.HasSuffix(resp.Filename, ".png"))
		assert.Equal(t, 1, app.storage.count())
		assert.True(t, app.tracker.has(domain.EventImageUploaded))
	})

	t.Run("rejects a non-image", func(t *testing.T) {
		app := newTestApp(t)
		body, ct := multipartBody(t, nil, "file", "notes.txt", "text/plain", []byte("hello"))
		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", ct)

		w := app.do(req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "File must be an image", decodeError(t, w))
		assert.Zero(t, app.storage.count())
		assert.False(t, app.tracker.has(domain.EventImageUploadFailed))
	})

	t.Run("rejects an oversized image", func(t *testing.T) {
		app := newTestApp(t)
		content := append(append([]byte{}, pngMagic...), make([]byte, maxUpload)...)
		body, ct := multipartBody(t, nil, "file", "big.png", "image/png", content)
		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", ct)

		w := app.do(req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "File size must be less than 5MB", decodeError(t, w))
		assert.Zero(t, app.storage.count())
	})

	t.Run("missing file", func(t *testing.T) {
		app := newTestApp(t)
		body, ct := multipartBody(t, map[string]string{"other": "x"}, "", "", "", nil)
		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", ct)

		w := app.do(req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No file provided", decodeError(t, w))
	})

	t.Run("storage permission denied", func(t *testing.T) {
		app := newTestApp(t)
		app.storage.err = domain.ErrStorageDenied
		body, ct := multipartBody(t, nil, "file", "a.png", "image/png", pngMagic)
		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", ct)

		w := app.do(req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Storage access denied. Please check storage permissions.", decodeError(t, w))
	})
}

func TestProfileAPI(t *testing.T) {
	t.Run("get existing profile", func(t *testing.T) {
		app := newTestApp(t)
		app.seedProfile("abc", "Jane Doe")

		w := app.do(httptest.NewRequest(http.MethodGet, "/api/v1/profiles/abc", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var p domain.Profile
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		assert.Equal(t, "Jane Doe", p.Name)
	})

	t.Run("missing profile is 404", func(t *testing.T) {
		app := newTestApp(t)

		w := app.do(httptest.NewRequest(http.MethodGet, "/api/v1/profiles/nope", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Profile not found", decodeError(t, w))
	})

	t.Run("offline fails fast", func(t *testing.T) {
		app := newTestApp(t)
		app.seedProfile("abc", "Jane Doe")
		app.network.offline.Store(true)

		w := app.do(httptest.NewRequest(http.MethodGet, "/api/v1/profiles/abc", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "You appear to be offline. Please check your internet connection.", decodeError(t, w))
		assert.Zero(t, app.profiles.reads)
	})

	t.Run("create stores a QR code pointing at the card", func(t *testing.T) {
		app := newTestApp(t)
		payload := `{"name":"Jane Doe","title":"Designer","contact":{"email":"jane@example.com"}}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/profiles", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		w := app.do(req)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp handler.CreateProfileResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "http://localhost:8080/card/"+resp.ID, resp.URL)

		stored := app.profiles.profiles[resp.ID]
		require.NotNil(t, stored)
		assert.True(t, strings.HasPrefix(stored.QRCode, "data:image/png;base64,"))
		assert.NotNil(t, stored.Expertise)
	})

	t.Run("create requires an email", func(t *testing.T) {
		app := newTestApp(t)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/profiles", strings.NewReader(`{"name":"Jane","title":"Designer"}`))
		req.Header.Set("Content-Type", "application/json")

		w := app.do(req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, app.profiles.creates)
	})

	t.Run("bio suggestions need a generator", func(t *testing.T) {
		app := newTestApp(t)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/profiles/bio-suggestions", strings.NewReader(`{"name":"Jane","title":"Designer"}`))
		req.Header.Set("Content-Type", "application/json")

		w := app.do(req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestPaymentAPI(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/payments/pay-1",
		strings.NewReader(`{"walletName":"Jane's Wallet","payLink":"https://pay.example.com/jane"}`))
	req.Header.Set("Content-Type", "application/json")
	w := app.do(req)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(httptest.NewRequest(http.MethodGet, "/api/v1/payments/pay-1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var p domain.Payment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "https://pay.example.com/jane", p.PayLink)

	w = app.do(httptest.NewRequest(http.MethodGet, "/api/v1/payments/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No payment data found for this ID", decodeError(t, w))
}

func TestCardPage(t *testing.T) {
	t.Run("loaded", func(t *testing.T) {
		app := newTestApp(t)
		app.seedProfile("abc", "Jane Doe")

		w := app.do(httptest.NewRequest(http.MethodGet, "/card/abc", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Jane Doe")
		assert.True(t, app.tracker.has(domain.EventProfileView))
	})

	t.Run("not found", func(t *testing.T) {
		app := newTestApp(t)

		w := app.do(httptest.NewRequest(http.MethodGet, "/card/nope", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Profile not found")
		assert.False(t, app.tracker.has(domain.EventProfileView))
	})

	t.Run("offline shows the error state", func(t *testing.T) {
		app := newTestApp(t)
		app.network.offline.Store(true)

		w := app.do(httptest.NewRequest(http.MethodGet, "/card/abc", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "You appear to be offline")
		assert.True(t, app.tracker.has(domain.EventErrorOccurred))
	})
}

func TestPaymentPageMissing(t *testing.T) {
	app := newTestApp(t)

	w := app.do(httptest.NewRequest(http.MethodGet, "/payments/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No payment data found for this ID")
}

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/create-card", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestCreateCardPage(t *testing.T) {
	valid := func() url.Values {
		return url.Values{
			"fullName":                 {"Jane Doe"},
			"jobTitle":                 {"Designer"},
			"email":                    {"jane@example.com"},
			"skills":                   {"Figma", ""},
			"experience_0_jobTitle":    {""},
			"experience_0_companyName": {""},
		}
	}

	t.Run("renders the empty form", func(t *testing.T) {
		app := newTestApp(t)

		w := app.do(httptest.NewRequest(http.MethodGet, "/create-card", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `name="fullName"`)
	})

	t.Run("invalid email blocks submission", func(t *testing.T) {
		app := newTestApp(t)
		values := valid()
		values.Set("email", "not-an-email")

		w := app.do(postForm(values))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Please enter a valid email")
		assert.Zero(t, app.profiles.creates)
	})

	t.Run("half filled experience row needs a company", func(t *testing.T) {
		app := newTestApp(t)
		values := valid()
		values.Set("experience_0_jobTitle", "Lead")

		w := app.do(postForm(values))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Company name is required")
		assert.Zero(t, app.profiles.creates)
	})

	t.Run("add skill re-renders without creating", func(t *testing.T) {
		app := newTestApp(t)
		values := valid()
		values.Set("action", "add_skill")

		w := app.do(postForm(values))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Zero(t, app.profiles.creates)
	})

	t.Run("valid submission creates one card", func(t *testing.T) {
		app := newTestApp(t)

		w := app.do(postForm(valid()))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), cardform.SuccessMessage)
		assert.Equal(t, 1, app.profiles.creates)
		assert.True(t, app.tracker.has(domain.EventCardCreated))

		for _, p := range app.profiles.profiles {
			assert.Equal(t, []string{"Figma"}, p.Expertise)
			assert.Equal(t, domain.PlaceholderAvatar, p.Avatar)
			assert.Empty(t, p.Experience)
		}
	})

	t.Run("photo is uploaded before the card is created", func(t *testing.T) {
		app := newTestApp(t)
		fields := map[string]string{
			"fullName": "Jane Doe",
			"jobTitle": "Designer",
			"email":    "jane@example.com",
		}
		body, ct := multipartBody(t, fields, "profilePhoto", "me.png", "image/png", pngMagic)
		req := httptest.NewRequest(http.MethodPost, "/create-card", body)
		req.Header.Set("Content-Type", ct)

		w := app.do(req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, app.storage.count())
		for _, p := range app.profiles.profiles {
			assert.True(t, strings.HasPrefix(p.Avatar, "/uploads/"))
		}
	})

	t.Run("submission over the body limit is reported as a whole", func(t *testing.T) {
		app := newTestApp(t)
		fields := map[string]string{
			"fullName": "Jane Doe",
			"jobTitle": "Designer",
			"email":    "jane@example.com",
		}
		photo := append(append([]byte{}, pngMagic...), make([]byte, 7<<20)...)
		body, ct := multipartBody(t, fields, "profilePhoto", "me.png", "image/png", photo)
		req := httptest.NewRequest(http.MethodPost, "/create-card", body)
		req.Header.Set("Content-Type", ct)

		w := app.do(req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "Your submission was too large and nothing was saved.")
		assert.Contains(t, w.Body.String(), "File size must be less than 5MB")
		assert.Zero(t, app.profiles.creates)
		assert.Zero(t, app.storage.count())
	})

	t.Run("non-image photo is shown inline", func(t *testing.T) {
		app := newTestApp(t)
		fields := map[string]string{
			"fullName": "Jane Doe",
			"jobTitle": "Designer",
			"email":    "jane@example.com",
		}
		body, ct := multipartBody(t, fields, "profilePhoto", "me.txt", "text/plain", []byte("hi"))
		req := httptest.NewRequest(http.MethodPost, "/create-card", body)
		req.Header.Set("Content-Type", ct)

		w := app.do(req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "File must be an image")
		assert.Zero(t, app.profiles.creates)
	})
}

func TestEvents(t *testing.T) {
	app := newTestApp(t)

	post := func(payload string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		return app.do(req)
	}

	w := post(`{"name":"linkedin_click","params":{"profile_id":"abc"}}`)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.True(t, app.tracker.has(domain.EventLinkedInClick))

	w = post(`{"name":"made_up"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(`{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	w := app.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"store":"online"`)

	app.network.offline.Store(true)
	w = app.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Contains(t, w.Body.String(), `"store":"offline"`)
}

func TestDashboardAndDiscover(t *testing.T) {
	app := newTestApp(t)

	w := app.do(httptest.NewRequest(http.MethodGet, "/dashboard?view=bogus", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")

	w = app.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(httptest.NewRequest(http.MethodGet, "/discover?q=python", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Maya Patel")
	assert.NotContains(t, w.Body.String(), "Sarah Chen")
	assert.True(t, app.tracker.has(domain.EventSearchPerformed))

	w = app.do(httptest.NewRequest(http.MethodGet, "/api/v1/talents?q=aws", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "James Thompson")
}

func TestPlaceholder(t *testing.T) {
	app := newTestApp(t)

	w := app.do(httptest.NewRequest(http.MethodGet, "/api/placeholder/120/120", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `width="120"`)
}
