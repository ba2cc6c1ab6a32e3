package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"compliance-backend/internal/config"
	"compliance-backend/internal/domains/content/model"
	reviewModel "compliance-backend/internal/domains/review/model"
	userModel "compliance-backend/internal/domains/user/model"
)

// =====================================================
// DOUBLES
// =====================================================

type mockContentRepo struct {
	mock.Mock
}

func (m *mockContentRepo) Create(ctx context.Context, c *model.Content) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockContentRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Content, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*model.Content), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockContentRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Content, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*model.Content), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockContentRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockContentRepo) List(ctx context.Context) ([]*model.Content, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*model.Content), args.Error(1)
}

func (m *mockContentRepo) ExistsByAuthorAndTitle(ctx context.Context, authorID uuid.UUID, title string) (bool, error) {
	args := m.Called(ctx, authorID, title)
	return args.Bool(0), args.Error(1)
}

func (m *mockContentRepo) Update(ctx context.Context, id uuid.UUID, title, fileKey *string) (*model.Content, error) {
	args := m.Called(ctx, id, title, fileKey)
	if c := args.Get(0); c != nil {
		return c.(*model.Content), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockReviews struct {
	mock.Mock
}

func (m *mockReviews) FanOut(ctx context.Context, contentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, contentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReviews) CountsByContent(ctx context.Context, contentID uuid.UUID) (reviewModel.Counts, error) {
	args := m.Called(ctx, contentID)
	return args.Get(0).(reviewModel.Counts), args.Error(1)
}

func (m *mockReviews) CountsByContents(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]reviewModel.Counts, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[uuid.UUID]reviewModel.Counts), args.Error(1)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) GetByID(ctx context.Context, id uuid.UUID) (*userModel.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*userModel.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBlobs struct {
	mock.Mock
}

func (m *mockBlobs) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return m.Called(ctx, key, r, size, contentType).Error(0)
}

func (m *mockBlobs) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockBlobs) URL(key string) string {
	return "http://minio.local/compliance/" + key
}

type mockCleaner struct {
	mock.Mock
}

func (m *mockCleaner) ScheduleDeletion(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type passThroughTx struct{}

func (passThroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	contents *mockContentRepo
	reviews  *mockReviews
	users    *mockUsers
	blobs    *mockBlobs
	cleaner  *mockCleaner
	svc      ServiceInterface
	author   uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		contents: new(mockContentRepo),
		reviews:  new(mockReviews),
		users:    new(mockUsers),
		blobs:    new(mockBlobs),
		cleaner:  new(mockCleaner),
		author:   uuid.New(),
	}
	f.svc = NewContentService(f.contents, f.reviews, f.users, f.blobs, f.cleaner, passThroughTx{}, config.UploadConfig{
		Prefix:  "uploads/",
		MaxSize: 1 << 20,
	})
	f.users.On("GetByID", mock.Anything, f.author).Return(&userModel.User{ID: f.author}, nil).Maybe()
	return f
}

func upload(name string) *model.FileUpload {
	return &model.FileUpload{Filename: name, Size: 5, ContentType: "application/pdf", Reader: strings.NewReader("hello")}
}

var uploadKey = mock.MatchedBy(func(key string) bool {
	return strings.HasPrefix(key, "uploads/") && strings.HasSuffix(key, ".pdf")
})

// =====================================================
// UPLOAD
// =====================================================

func TestUploadContent_CreatesVersionOneAndFansOut(t *testing.T) {
	f := newFixture()

	f.contents.On("ExistsByAuthorAndTitle", mock.Anything, f.author, "Policy").Return(false, nil)
	f.blobs.On("Put", mock.Anything, uploadKey, mock.Anything, int64(5), "application/pdf").Return(nil)
	f.contents.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Content) bool {
		return c.Version == 1 && c.AuthorID == f.author && c.Title == "Policy"
	})).Return(nil)
	f.reviews.On("FanOut", mock.Anything, mock.Anything).Return(int64(3), nil)

	resp, err := f.svc.UploadContent(context.Background(), f.author, model.UploadContentRequest{Title: "Policy", File: upload("Policy.PDF")})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Version)
	assert.Equal(t, f.author, resp.Author)
	assert.Equal(t, reviewModel.AggregatePending, resp.ReviewStatus)
	assert.True(t, strings.HasPrefix(resp.File, "http://minio.local/compliance/uploads/"))
	f.contents.AssertExpectations(t)
	f.reviews.AssertExpectations(t)
}

func TestUploadContent_NoGuidelines(t *testing.T) {
	f := newFixture()

	f.contents.On("ExistsByAuthorAndTitle", mock.Anything, f.author, "Policy").Return(false, nil)
	f.blobs.On("Put", mock.Anything, uploadKey, mock.Anything, int64(5), "application/pdf").Return(nil)
	f.contents.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.reviews.On("FanOut", mock.Anything, mock.Anything).Return(int64(0), nil)

	resp, err := f.svc.UploadContent(context.Background(), f.author, model.UploadContentRequest{Title: "Policy", File: upload("p.pdf")})

	require.NoError(t, err)
	assert.Equal(t, reviewModel.AggregateNoItems, resp.ReviewStatus)
}

func TestUploadContent_DuplicateTitle(t *testing.T) {
	f := newFixture()

	f.contents.On("ExistsByAuthorAndTitle", mock.Anything, f.author, "Policy").Return(true, nil)

	_, err := f.svc.UploadContent(context.Background(), f.author, model.UploadContentRequest{Title: "Policy", File: upload("p.pdf")})

	var contentErr *model.ContentError
	require.ErrorAs(t, err, &contentErr)
	assert.Equal(t, model.ErrCodeDuplicateTitle, contentErr.Code)
	f.blobs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.contents.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUploadContent_RaceLostRemovesBlob(t *testing.T) {
	f := newFixture()

	f.contents.On("ExistsByAuthorAndTitle", mock.Anything, f.author, "Policy").Return(false, nil)
	f.blobs.On("Put", mock.Anything, uploadKey, mock.Anything, int64(5), "application/pdf").Return(nil)
	f.contents.On("Create", mock.Anything, mock.Anything).Return(model.ErrDuplicateTitle)
	f.blobs.On("Delete", mock.Anything, uploadKey).Return(nil)

	_, err := f.svc.UploadContent(context.Background(), f.author, model.UploadContentRequest{Title: "Policy", File: upload("p.pdf")})

	var contentErr *model.ContentError
	require.ErrorAs(t, err, &contentErr)
	assert.Equal(t, model.ErrCodeDuplicateTitle, contentErr.Code)
	f.blobs.AssertCalled(t, "Delete", mock.Anything, uploadKey)
	f.reviews.AssertNotCalled(t, "FanOut", mock.Anything, mock.Anything)
}

func TestUploadContent_DisallowedExtension(t *testing.T) {
	f := newFixture()

	_, err := f.svc.UploadContent(context.Background(), f.author, model.UploadContentRequest{Title: "Tool", File: upload("setup.exe")})

	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "file")
	f.contents.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.blobs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadContent_TrimsTitleBeforeDuplicateCheck(t *testing.T) {
	f := newFixture()

	f.contents.On("ExistsByAuthorAndTitle", mock.Anything, f.author, "Policy").Return(true, nil)

	_, err := f.svc.UploadContent(context.Background(), f.author, model.UploadContentRequest{Title: "  Policy \n", File: upload("p.pdf")})

	var contentErr *model.ContentError
	require.ErrorAs(t, err, &contentErr)
	assert.Equal(t, model.ErrCodeDuplicateTitle, contentErr.Code)
	f.contents.AssertExpectations(t)
}

func TestUploadContent_RejectsUnstorableTitle(t *testing.T) {
	for _, title := range []string{"   ", "nul\x00byte", "bad\xff\xfe"} {
		f := newFixture()

		_, err := f.svc.UploadContent(context.Background(), f.author, model.UploadContentRequest{Title: title, File: upload("p.pdf")})

		var errs validation.Errors
		require.ErrorAs(t, err, &errs, "%q", title)
		assert.Contains(t, errs, "title")
		f.contents.AssertNotCalled(t, "ExistsByAuthorAndTitle", mock.Anything, mock.Anything, mock.Anything)
		f.blobs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestUploadContent_FanOutFailureRollsBack(t *testing.T) {
	f := newFixture()

	f.contents.On("ExistsByAuthorAndTitle", mock.Anything, f.author, "Policy").Return(false, nil)
	f.blobs.On("Put", mock.Anything, uploadKey, mock.Anything, int64(5), "application/pdf").Return(nil)
	f.contents.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.reviews.On("FanOut", mock.Anything, mock.Anything).Return(int64(0), errors.New("deadlock"))
	f.blobs.On("Delete", mock.Anything, uploadKey).Return(nil)

	_, err := f.svc.UploadContent(context.Background(), f.author, model.UploadContentRequest{Title: "Policy", File: upload("p.pdf")})

	require.Error(t, err)
	f.blobs.AssertCalled(t, "Delete", mock.Anything, uploadKey)
}

// =====================================================
// UPDATE
// =====================================================

func existing(id, author uuid.UUID) *model.Content {
	return &model.Content{
		ID:        id,
		Title:     "Policy",
		FileKey:   "uploads/old.pdf",
		AuthorID:  author,
		Version:   1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestUpdateContent_NonOwnerForbidden(t *testing.T) {
	f := newFixture()
	id, stranger := uuid.New(), uuid.New()

	f.contents.On("GetByID", mock.Anything, id).Return(existing(id, f.author), nil)

	_, err := f.svc.UpdateContent(context.Background(), stranger, id, model.UpdateContentRequest{File: upload("new.pdf")})

	var contentErr *model.ContentError
	require.ErrorAs(t, err, &contentErr)
	assert.Equal(t, model.ErrCodeNotOwner, contentErr.Code)
	assert.Equal(t, "You can only update content you own.", contentErr.Message)
	f.blobs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.contents.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateContent_FileReplacementBumpsVersion(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	current := existing(id, f.author)
	bumped := existing(id, f.author)
	bumped.Version = 2
	bumped.FileKey = "uploads/new.pdf"

	f.contents.On("GetByID", mock.Anything, id).Return(current, nil)
	f.blobs.On("Put", mock.Anything, uploadKey, mock.Anything, int64(5), "application/pdf").Return(nil)
	f.contents.On("GetByIDForUpdate", mock.Anything, id).Return(current, nil)
	f.contents.On("Update", mock.Anything, id, (*string)(nil), mock.MatchedBy(func(k *string) bool {
		return k != nil && strings.HasPrefix(*k, "uploads/")
	})).Return(bumped, nil)
	f.cleaner.On("ScheduleDeletion", mock.Anything, "uploads/old.pdf").Return(nil)
	f.reviews.On("CountsByContent", mock.Anything, id).Return(reviewModel.Counts{Total: 2, Passed: 2}, nil)

	resp, err := f.svc.UpdateContent(context.Background(), f.author, id, model.UpdateContentRequest{File: upload("new.pdf")})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Version)
	assert.Equal(t, reviewModel.AggregateCompleted, resp.ReviewStatus)
	f.cleaner.AssertExpectations(t)
}

func TestUpdateContent_TitleOnlyKeepsVersion(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	title := "Policy v2"
	current := existing(id, f.author)
	renamed := existing(id, f.author)
	renamed.Title = title

	f.contents.On("GetByID", mock.Anything, id).Return(current, nil)
	f.contents.On("GetByIDForUpdate", mock.Anything, id).Return(current, nil)
	f.contents.On("Update", mock.Anything, id, &title, (*string)(nil)).Return(renamed, nil)
	f.reviews.On("CountsByContent", mock.Anything, id).Return(reviewModel.Counts{}, nil)

	resp, err := f.svc.UpdateContent(context.Background(), f.author, id, model.UpdateContentRequest{Title: &title})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Version)
	assert.Equal(t, title, resp.Title)
	f.blobs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.cleaner.AssertNotCalled(t, "ScheduleDeletion", mock.Anything, mock.Anything)
}

func TestUpdateContent_StoresTrimmedTitle(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	padded, trimmed := "  Policy v2  ", "Policy v2"
	current := existing(id, f.author)
	renamed := existing(id, f.author)
	renamed.Title = trimmed

	f.contents.On("GetByID", mock.Anything, id).Return(current, nil)
	f.contents.On("GetByIDForUpdate", mock.Anything, id).Return(current, nil)
	f.contents.On("Update", mock.Anything, id, &trimmed, (*string)(nil)).Return(renamed, nil)
	f.reviews.On("CountsByContent", mock.Anything, id).Return(reviewModel.Counts{}, nil)

	resp, err := f.svc.UpdateContent(context.Background(), f.author, id, model.UpdateContentRequest{Title: &padded})

	require.NoError(t, err)
	assert.Equal(t, trimmed, resp.Title)
	f.contents.AssertExpectations(t)
}

func TestUpdateContent_ValidationBeforeLookup(t *testing.T) {
	f := newFixture()

	_, err := f.svc.UpdateContent(context.Background(), f.author, uuid.New(), model.UpdateContentRequest{File: upload("macro.xlsm")})

	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	f.contents.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUpdateContent_NotFound(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	title := "x"

	f.contents.On("GetByID", mock.Anything, id).Return(nil, model.ErrContentNotFound)

	_, err := f.svc.UpdateContent(context.Background(), f.author, id, model.UpdateContentRequest{Title: &title})

	var contentErr *model.ContentError
	require.ErrorAs(t, err, &contentErr)
	assert.Equal(t, model.ErrCodeContentNotFound, contentErr.Code)
}

// =====================================================
// READ
// =====================================================

func TestListContents_DerivesStatusPerContent(t *testing.T) {
	f := newFixture()
	a, b := existing(uuid.New(), f.author), existing(uuid.New(), f.author)

	f.contents.On("List", mock.Anything).Return([]*model.Content{a, b}, nil)
	f.reviews.On("CountsByContents", mock.Anything, []uuid.UUID{a.ID, b.ID}).Return(map[uuid.UUID]reviewModel.Counts{
		a.ID: {Total: 2, Passed: 2},
	}, nil)

	out, err := f.svc.ListContents(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, reviewModel.AggregateCompleted, out[0].ReviewStatus)
	assert.Equal(t, reviewModel.AggregateNoItems, out[1].ReviewStatus)
}
