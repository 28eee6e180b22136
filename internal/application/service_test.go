package application

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invenlab/inventory-api/internal/domain/catalog"
	"github.com/invenlab/inventory-api/internal/domain/entity"
	"github.com/invenlab/inventory-api/internal/infrastructure/memory"
	"github.com/invenlab/inventory-api/pkg/helpers"
	"github.com/invenlab/inventory-api/pkg/mailer"
	"github.com/invenlab/inventory-api/pkg/storage"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakePublisher struct {
	jobs []mailer.EmailJob
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if job, ok := body.(mailer.EmailJob); ok {
		f.jobs = append(f.jobs, job)
	}
	return nil
}

// fakeImages mimics the bucket contract: random-ish URLs per upload,
// removal tracking, upload-before-retire on replace.
type fakeImages struct {
	seq     int
	removed []string
}

func (f *fakeImages) Upload(_ context.Context, _ io.Reader, filename, _, folder string, size int64) (string, error) {
	if !storage.AllowedExtension(filename) {
		return "", storage.ErrInvalidExtension
	}
	if size > storage.MaxFileSize {
		return "", storage.ErrFileTooLarge
	}
	f.seq++
	return fmt.Sprintf("https://storage.googleapis.com/test-bucket/%s/obj-%d.jpg", folder, f.seq), nil
}

func (f *fakeImages) Replace(ctx context.Context, r io.Reader, filename, contentType, folder string, size int64, oldURL string) (string, error) {
	url, err := f.Upload(ctx, r, filename, contentType, folder, size)
	if err != nil {
		return "", err
	}
	if oldURL != "" {
		f.removed = append(f.removed, oldURL)
	}
	return url, nil
}

func (f *fakeImages) Remove(_ context.Context, url string) (bool, error) {
	f.removed = append(f.removed, url)
	return true, nil
}

func newAuthService(db *memory.DB, pub EmailPublisher) *AuthService {
	jwt := helpers.NewJWTManager("secret", "inventory-api", "inventory-clients", time.Hour)
	return NewAuthService(db.Users(), jwt, nil, pub, testLogger(), "inventory-api", "http://localhost:3000", 30*time.Minute)
}

func TestRegisterAssignsDefaultsAndBaseRole(t *testing.T) {
	db := memory.NewDB()
	pub := &fakePublisher{}
	svc := newAuthService(db, pub)
	ctx := context.Background()

	sess, err := svc.Register(ctx, "ana@example.com", "secret1", "Ana Torres")
	require.NoError(t, err)
	u := sess.User
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, []string{entity.RoleUser}, u.Roles)
	assert.NotEqual(t, "secret1", u.Password, "password must be stored hashed")

	// registration signs the client in: the returned token must verify
	// and carry the fresh account's claims
	require.NotEmpty(t, sess.Token)
	assert.True(t, sess.ExpiresAt.After(time.Now()))
	claims, err := svc.JWT.Parse(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.Subject)
	assert.Equal(t, []string{entity.RoleUser}, claims.Roles)

	cfg := u.Config
	assert.Equal(t, "light", cfg.Appearance.Theme)
	assert.Equal(t, "#3b82f6", cfg.Appearance.PrimaryColor)
	assert.Equal(t, "es", cfg.Locale.Language)
	assert.Equal(t, "America/Lima", cfg.Locale.Timezone)
	assert.True(t, cfg.Notifications.Email)
	assert.False(t, cfg.Notifications.Promotions)
	assert.True(t, cfg.Security.MultiSession)
	assert.Nil(t, cfg.Security.LastPasswordChange)

	require.Len(t, pub.jobs, 1)
	assert.Equal(t, "welcome", pub.jobs[0].Template)
	assert.Equal(t, "ana@example.com", pub.jobs[0].To)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := memory.NewDB()
	svc := newAuthService(db, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ana@example.com", "secret1", "Ana")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "ANA@example.com", "secret2", "Other Ana")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	db := memory.NewDB()
	svc := newAuthService(db, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ana@example.com", "secret1", "Ana")
	require.NoError(t, err)

	sess, err := svc.Login(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.True(t, sess.ExpiresAt.After(time.Now()))

	claims, err := svc.JWT.Parse(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, claims.Subject)
	assert.Equal(t, []string{entity.RoleUser}, claims.Roles)

	_, err = svc.Login(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestInventoryFlow(t *testing.T) {
	db := memory.NewDB()
	images := &fakeImages{}
	logger := testLogger()
	categories := NewCategoryService(db.Categories(), logger)
	catalogSvc := NewCatalogService(db.Products(), db.Categories(), images, logger, nil, "")
	ctx := context.Background()

	_, err := catalogSvc.Create(ctx, ProductInput{Name: "Hammer", Price: 12.5, Stock: 3, Available: true, CategoryID: 99})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	tools, err := categories.Create(ctx, "Tools", "Hand tools", true)
	require.NoError(t, err)

	hammer, err := catalogSvc.Create(ctx, ProductInput{Name: "Hammer", Description: "Claw hammer", Price: 12.5, Stock: 3, Available: true, CategoryID: tools.ID})
	require.NoError(t, err)
	assert.Equal(t, "Tools", hammer.CategoryName)
	assert.True(t, hammer.LowStock())

	_, err = catalogSvc.Create(ctx, ProductInput{Name: "Screwdriver", Price: 5, Stock: 40, Available: true, CategoryID: tools.ID})
	require.NoError(t, err)

	// category now counts its products and refuses deletion
	got, err := categories.Get(ctx, tools.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ProductCount)
	assert.ErrorIs(t, categories.Delete(ctx, tools.ID), ErrCategoryHasProducts)

	// listing sorted by stock ascending puts the low one first
	items, meta, err := catalogSvc.List(ctx, &catalog.Filter{OrderBy: "stock"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, hammer.ID, items[0].ID)
	assert.Equal(t, 2, meta.TotalCount)
	assert.Equal(t, 1, meta.TotalPages)

	low, err := catalogSvc.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, hammer.ID, low[0].ID)

	// stock zero disables the product
	p, err := catalogSvc.UpdateStock(ctx, hammer.ID, 0)
	require.NoError(t, err)
	assert.False(t, p.Available)
	assert.True(t, p.OutOfStock())

	// restocking does not silently re-enable it
	p, err = catalogSvc.UpdateStock(ctx, hammer.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
	assert.False(t, p.Available)

	// empty the category, then delete it
	require.NoError(t, catalogSvc.Delete(ctx, hammer.ID))
	items, _, err = catalogSvc.List(ctx, &catalog.Filter{CategoryID: &tools.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NoError(t, catalogSvc.Delete(ctx, items[0].ID))
	assert.NoError(t, categories.Delete(ctx, tools.ID))
}

func TestListByCategoryOrdersByNameCaseInsensitive(t *testing.T) {
	db := memory.NewDB()
	logger := testLogger()
	categories := NewCategoryService(db.Categories(), logger)
	catalogSvc := NewCatalogService(db.Products(), db.Categories(), &fakeImages{}, logger, nil, "")
	ctx := context.Background()

	cat, err := categories.Create(ctx, "Fruit", "", true)
	require.NoError(t, err)
	for _, name := range []string{"Banana", "apple", "Cherry"} {
		_, err := catalogSvc.Create(ctx, ProductInput{Name: name, Price: 1, Stock: 5, Available: true, CategoryID: cat.ID})
		require.NoError(t, err)
	}

	items, err := catalogSvc.ListByCategory(ctx, cat.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "apple", items[0].Name)
	assert.Equal(t, "Banana", items[1].Name)
	assert.Equal(t, "Cherry", items[2].Name)
}

func TestProductImageReplaceRetiresOldObject(t *testing.T) {
	db := memory.NewDB()
	images := &fakeImages{}
	logger := testLogger()
	categories := NewCategoryService(db.Categories(), logger)
	catalogSvc := NewCatalogService(db.Products(), db.Categories(), images, logger, nil, "")
	ctx := context.Background()

	cat, err := categories.Create(ctx, "Tools", "", true)
	require.NoError(t, err)
	p, err := catalogSvc.Create(ctx, ProductInput{Name: "Hammer", Price: 10, Stock: 1, Available: true, CategoryID: cat.ID})
	require.NoError(t, err)

	p, err = catalogSvc.UploadImage(ctx, p.ID, nil, "front.jpg", "image/jpeg", 1024)
	require.NoError(t, err)
	first := p.ImageURL
	require.NotEmpty(t, first)
	assert.Empty(t, images.removed)

	p, err = catalogSvc.UploadImage(ctx, p.ID, nil, "better.png", "image/png", 2048)
	require.NoError(t, err)
	assert.NotEqual(t, first, p.ImageURL)
	assert.Equal(t, []string{first}, images.removed, "old object retired after the new upload")

	_, err = catalogSvc.UploadImage(ctx, p.ID, nil, "malware.exe", "application/octet-stream", 10)
	assert.ErrorIs(t, err, storage.ErrInvalidExtension)

	_, err = catalogSvc.UploadImage(ctx, p.ID, nil, "huge.jpg", "image/jpeg", storage.MaxFileSize+1)
	assert.ErrorIs(t, err, storage.ErrFileTooLarge)

	current := p.ImageURL
	p, err = catalogSvc.RemoveImage(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, p.ImageURL)
	assert.Contains(t, images.removed, current)

	// removing again is a no-op
	_, err = catalogSvc.RemoveImage(ctx, p.ID)
	assert.NoError(t, err)
}

func TestProfileUpdates(t *testing.T) {
	db := memory.NewDB()
	auth := newAuthService(db, nil)
	images := &fakeImages{}
	profile := NewProfileService(db.Users(), images, testLogger())
	ctx := context.Background()

	sess, err := auth.Register(ctx, "ana@example.com", "secret1", "Ana")
	require.NoError(t, err)
	u := sess.User

	// partial merge: only bio changes
	bio := "Inventory manager"
	got, err := profile.UpdateBasicInfo(ctx, u.ID, BasicInfoUpdate{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.FullName)
	assert.Equal(t, bio, got.Bio)

	// sub-config replacement leaves the other sections alone
	got, err = profile.UpdateAppearance(ctx, u.ID, entity.Appearance{
		Theme: "dark", PrimaryColor: "#000000", SecondaryColor: "#ffffff",
		FontFamily: "mono", FontSize: 14, ContrastMode: "high",
	})
	require.NoError(t, err)
	assert.Equal(t, "dark", got.Config.Appearance.Theme)
	assert.Equal(t, "es", got.Config.Locale.Language)
	assert.True(t, got.Config.Notifications.Email)

	// password change records the timestamp
	err = profile.ChangePassword(ctx, u.ID, "wrong", "newsecret")
	assert.ErrorIs(t, err, ErrWrongPassword)
	require.NoError(t, profile.ChangePassword(ctx, u.ID, "secret1", "newsecret"))

	got, err = profile.Get(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Config.Security.LastPasswordChange)
	changedAt := *got.Config.Security.LastPasswordChange

	_, err = auth.Login(ctx, "ana@example.com", "newsecret")
	assert.NoError(t, err)
	_, err = auth.Login(ctx, "ana@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// security toggles never touch the password-change timestamp
	got, err = profile.UpdateSecurity(ctx, u.ID, entity.Security{MultiSession: false, TwoFactor: true})
	require.NoError(t, err)
	assert.False(t, got.Config.Security.MultiSession)
	assert.True(t, got.Config.Security.TwoFactor)

	got, err = profile.Get(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Config.Security.LastPasswordChange)
	assert.Equal(t, changedAt, *got.Config.Security.LastPasswordChange)
}

func TestProfilePhoto(t *testing.T) {
	db := memory.NewDB()
	auth := newAuthService(db, nil)
	images := &fakeImages{}
	profile := NewProfileService(db.Users(), images, testLogger())
	ctx := context.Background()

	sess, err := auth.Register(ctx, "ana@example.com", "secret1", "Ana")
	require.NoError(t, err)
	u := sess.User

	got, err := profile.UploadPhoto(ctx, u.ID, nil, "me.webp", "image/webp", 512)
	require.NoError(t, err)
	first := got.PhotoURL
	require.NotEmpty(t, first)

	got, err = profile.UploadPhoto(ctx, u.ID, nil, "me2.jpg", "image/jpeg", 512)
	require.NoError(t, err)
	assert.NotEqual(t, first, got.PhotoURL)
	assert.Equal(t, []string{first}, images.removed)

	got, err = profile.RemovePhoto(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, got.PhotoURL)

	// second removal is fine
	_, err = profile.RemovePhoto(ctx, u.ID)
	assert.NoError(t, err)
}

func TestSearchWithoutMirrorReturnsEmpty(t *testing.T) {
	db := memory.NewDB()
	catalogSvc := NewCatalogService(db.Products(), db.Categories(), &fakeImages{}, testLogger(), nil, "")
	hits, err := catalogSvc.Search(context.Background(), "hammer", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
