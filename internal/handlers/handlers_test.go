package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/mintfeed/mintfeed/internal/cache"
	"github.com/mintfeed/mintfeed/internal/classify"
	"github.com/mintfeed/mintfeed/internal/content"
	"github.com/mintfeed/mintfeed/internal/ledger"
	"github.com/mintfeed/mintfeed/internal/logger"
	"github.com/mintfeed/mintfeed/internal/models"
	"github.com/mintfeed/mintfeed/internal/queue"
	"github.com/mintfeed/mintfeed/internal/scanner"
	"github.com/mintfeed/mintfeed/internal/storage"
)

const testCollection = "collection-addr"

type HandlersTestSuite struct {
	suite.Suite
	router *gin.Engine
	ledger *ledger.MockLedger
}

func (s *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	logger.InitializeForTests()

	s.ledger = ledger.NewMockLedger()
	store := cache.New()
	q := queue.New(time.Millisecond, 10*time.Millisecond)
	sc := scanner.New(s.ledger, q, store, scanner.Config{Timeout: time.Second})

	identity, err := ledger.NewKeypairIdentity(bytes.Repeat([]byte{7}, 32))
	s.Require().NoError(err)

	svc, err := content.New(content.Config{Collection: testCollection}, sc, store, s.ledger, &storage.MockUploader{}, identity)
	s.Require().NoError(err)

	h := NewHandlers(svc)
	s.router = gin.New()
	s.router.GET("/health", h.Health)
	h.RegisterRoutes(s.router.Group("/api/v1"))
}

func (s *HandlersTestSuite) seedPost(id, author string, ts int64) {
	s.ledger.AddRecord(testCollection, ledger.ContentRecord{
		ID:          id,
		Description: "content of " + id,
		Attributes: []ledger.Attribute{
			{TraitType: classify.AttrType, Value: string(models.KindPost)},
			{TraitType: classify.AttrAuthor, Value: author},
			{TraitType: classify.AttrTimestamp, Value: strconv.FormatInt(ts, 10)},
		},
	})
}

func (s *HandlersTestSuite) seedReply(id, parent string, ts int64) {
	s.ledger.AddRecord(testCollection, ledger.ContentRecord{
		ID:          id,
		Description: "reply " + id,
		Attributes: []ledger.Attribute{
			{TraitType: classify.AttrType, Value: string(models.KindReply)},
			{TraitType: classify.AttrAuthor, Value: "wallet-r"},
			{TraitType: classify.AttrTimestamp, Value: strconv.FormatInt(ts, 10)},
			{TraitType: classify.AttrParentPost, Value: parent},
		},
	})
}

func (s *HandlersTestSuite) request(method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlersTestSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (s *HandlersTestSuite) TestHealth() {
	w := s.request(http.MethodGet, "/health", nil, "")
	s.Equal(http.StatusOK, w.Code)
	s.Equal("ok", s.decode(w)["status"])
}

func (s *HandlersTestSuite) TestGetPostsOrdered() {
	s.seedPost("p1", "wallet-a", 100)
	s.seedPost("p2", "wallet-a", 300)
	s.seedPost("p3", "wallet-b", 200)

	w := s.request(http.MethodGet, "/api/v1/posts", nil, "")
	s.Equal(http.StatusOK, w.Code)

	body := s.decode(w)
	s.Equal(float64(3), body["count"])
	posts := body["posts"].([]any)
	s.Equal("p2", posts[0].(map[string]any)["id"])
	s.Equal("p3", posts[1].(map[string]any)["id"])
	s.Equal("p1", posts[2].(map[string]any)["id"])
}

func (s *HandlersTestSuite) TestGetPostWithReplies() {
	s.seedPost("p1", "wallet-a", 100)
	s.seedReply("r1", "p1", 50)
	s.seedReply("r2", "p1", 10)
	s.seedReply("other", "p9", 5)

	w := s.request(http.MethodGet, "/api/v1/posts/p1", nil, "")
	s.Equal(http.StatusOK, w.Code)

	body := s.decode(w)
	s.Equal("p1", body["post"].(map[string]any)["id"])
	replies := body["replies"].([]any)
	s.Require().Len(replies, 2)
	s.Equal("r2", replies[0].(map[string]any)["id"])
	s.Equal("r1", replies[1].(map[string]any)["id"])
}

func (s *HandlersTestSuite) TestGetPostNotFound() {
	w := s.request(http.MethodGet, "/api/v1/posts/missing", nil, "")
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("NOT_FOUND", s.decode(w)["error"].(map[string]any)["code"])
}

func (s *HandlersTestSuite) TestGetUserPosts() {
	s.seedPost("p1", "wallet-a", 100)
	s.seedPost("p2", "wallet-b", 200)

	w := s.request(http.MethodGet, "/api/v1/users/wallet-a/posts", nil, "")
	s.Equal(http.StatusOK, w.Code)
	s.Equal(float64(1), s.decode(w)["count"])
}

func (s *HandlersTestSuite) TestGetProfileNotFound() {
	w := s.request(http.MethodGet, "/api/v1/profiles/wallet-a", nil, "")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlersTestSuite) TestCreatePost() {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	s.Require().NoError(form.WriteField("kind", "post"))
	s.Require().NoError(form.WriteField("content", "hello from the api"))
	s.Require().NoError(form.Close())

	w := s.request(http.MethodPost, "/api/v1/content", &buf, form.FormDataContentType())
	s.Equal(http.StatusCreated, w.Code)

	body := s.decode(w)
	s.Equal("post", body["kind"])
	created := body["content"].(map[string]any)
	s.Equal("hello from the api", created["content"])
	s.NotEmpty(created["id"])

	// The freshly minted post is immediately readable.
	w = s.request(http.MethodGet, "/api/v1/posts", nil, "")
	s.Equal(http.StatusOK, w.Code)
	s.Equal(float64(1), s.decode(w)["count"])
}

func (s *HandlersTestSuite) TestCreateValidationFailure() {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	s.Require().NoError(form.WriteField("kind", "reply"))
	s.Require().NoError(form.WriteField("content", "missing parent"))
	s.Require().NoError(form.Close())

	w := s.request(http.MethodPost, "/api/v1/content", &buf, form.FormDataContentType())
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Equal("VALIDATION_ERROR", s.decode(w)["error"].(map[string]any)["code"])
	s.Zero(s.ledger.CallCount("Mint"))
}

func (s *HandlersTestSuite) TestCreateWithImage() {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	s.Require().NoError(form.WriteField("kind", "post"))
	s.Require().NoError(form.WriteField("content", "with picture"))
	part, err := form.CreateFormFile("image", "pic.png")
	s.Require().NoError(err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n00000000"))
	s.Require().NoError(err)
	s.Require().NoError(form.Close())

	w := s.request(http.MethodPost, "/api/v1/content", &buf, form.FormDataContentType())
	s.Equal(http.StatusCreated, w.Code)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
