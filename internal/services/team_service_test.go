package services

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/repository"
	"github.com/yukikurage/project-tracker/internal/storage"
	"github.com/yukikurage/project-tracker/internal/testutil"
	"github.com/yukikurage/project-tracker/internal/utils"
)

type teamEnv struct {
	db    *gorm.DB
	store *testutil.MemoryStore
	svc   *TeamService
	owner *models.User
	other *models.User
}

func newTeamEnv(t *testing.T) *teamEnv {
	t.Helper()
	db := testutil.NewDB(t)
	store := testutil.NewMemoryStore()
	return &teamEnv{
		db:    db,
		store: store,
		svc:   NewTeamService(repository.NewPersonRepository(db), store),
		owner: testutil.CreateUser(t, db, "owner"),
		other: testutil.CreateUser(t, db, "other"),
	}
}

func (e *teamEnv) input(picture io.Reader) AddMemberInput {
	return AddMemberInput{
		OwnerID:    e.owner.ID,
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "ada@example.com",
		EmployeeID: "E-1",
		Picture:    picture,
	}
}

func TestAddMember_Validation(t *testing.T) {
	env := newTeamEnv(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*AddMemberInput)
		want   error
	}{
		{"first name", func(in *AddMemberInput) { in.FirstName = "" }, ErrFirstNameMissing},
		{"last name", func(in *AddMemberInput) { in.LastName = " " }, ErrLastNameMissing},
		{"email", func(in *AddMemberInput) { in.Email = "" }, ErrEmailMissing},
		{"employee id", func(in *AddMemberInput) { in.EmployeeID = "" }, ErrEmployeeIDMissing},
		{"blank employee id", func(in *AddMemberInput) { in.EmployeeID = "\t" }, ErrEmployeeIDMissing},
		{"malformed email", func(in *AddMemberInput) { in.Email = "not-an-email" }, ErrEmailInvalid},
		{"display name email", func(in *AddMemberInput) { in.Email = "Bob <bob@example.com>" }, ErrEmailInvalid},
		{"quoted display name email", func(in *AddMemberInput) { in.Email = `"x" <a@b>` }, ErrEmailInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := env.input(nil)
			tt.mutate(&in)
			_, err := env.svc.AddMember(ctx, in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	var count int64
	require.NoError(t, env.db.Model(&models.Person{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAddMember_WithoutPicture(t *testing.T) {
	env := newTeamEnv(t)

	person, err := env.svc.AddMember(context.Background(), env.input(nil))
	require.NoError(t, err)
	assert.False(t, person.HasPicture())

	_, err = env.svc.OpenPicture(context.Background(), env.owner.ID, person.ID)
	assert.ErrorIs(t, err, ErrPictureNotFound)
}

func TestAddMember_WithPicture(t *testing.T) {
	env := newTeamEnv(t)
	ctx := context.Background()

	person, err := env.svc.AddMember(ctx, env.input(strings.NewReader("jpeg-bytes")))
	require.NoError(t, err)

	key := storage.PictureKey(person.ID)
	assert.Equal(t, key, person.ProfilePicture)
	assert.True(t, env.store.Has(key))

	rc, err := env.svc.OpenPicture(ctx, env.owner.ID, person.ID)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	_, err = env.svc.OpenPicture(ctx, env.other.ID, person.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAddMember_PictureFailureRemovesRow(t *testing.T) {
	env := newTeamEnv(t)
	env.store.PutErr = testutil.ErrStoreDown

	_, err := env.svc.AddMember(context.Background(), env.input(strings.NewReader("jpeg")))
	require.ErrorIs(t, err, testutil.ErrStoreDown)

	var count int64
	require.NoError(t, env.db.Model(&models.Person{}).Count(&count).Error)
	assert.Zero(t, count)
}

// failingPictureRepo fails to record a stored picture.
type failingPictureRepo struct {
	repository.PersonRepository
}

func (r failingPictureRepo) SetProfilePicture(id, ownerID uint64, key string) error {
	return gorm.ErrInvalidDB
}

func TestAddMember_RecordFailureRemovesRowAndPicture(t *testing.T) {
	env := newTeamEnv(t)
	svc := NewTeamService(failingPictureRepo{repository.NewPersonRepository(env.db)}, env.store)

	_, err := svc.AddMember(context.Background(), env.input(strings.NewReader("jpeg")))
	require.ErrorIs(t, err, gorm.ErrInvalidDB)

	var count int64
	require.NoError(t, env.db.Model(&models.Person{}).Count(&count).Error)
	assert.Zero(t, count)
	require.Len(t, env.store.Deleted, 1)
	assert.False(t, env.store.Has(env.store.Deleted[0]))
}

func TestRemoveMember(t *testing.T) {
	env := newTeamEnv(t)
	ctx := context.Background()

	withPicture, err := env.svc.AddMember(ctx, env.input(strings.NewReader("jpeg")))
	require.NoError(t, err)
	testutil.CreateProject(t, env.db, env.owner.ID, "Engine", time.Now().Add(time.Hour), withPicture.ID)

	assert.ErrorIs(t, env.svc.RemoveMember(ctx, env.other.ID, withPicture.ID), ErrForbidden)
	require.NoError(t, env.svc.RemoveMember(ctx, env.owner.ID, withPicture.ID))
	assert.Equal(t, []string{storage.PictureKey(withPicture.ID)}, env.store.Deleted)
	assert.False(t, env.store.Has(storage.PictureKey(withPicture.ID)))

	var links int64
	require.NoError(t, env.db.Model(&models.ProjectMember{}).Count(&links).Error)
	assert.Zero(t, links)

	assert.ErrorIs(t, env.svc.RemoveMember(ctx, env.owner.ID, withPicture.ID), ErrPersonNotFound)
}

func TestRemoveMember_WithoutPictureLeavesStoreAlone(t *testing.T) {
	env := newTeamEnv(t)
	ctx := context.Background()

	person, err := env.svc.AddMember(ctx, env.input(nil))
	require.NoError(t, err)

	require.NoError(t, env.svc.RemoveMember(ctx, env.owner.ID, person.ID))
	assert.Empty(t, env.store.Deleted)
}

func TestGetMember_PreloadsProjects(t *testing.T) {
	env := newTeamEnv(t)
	person := testutil.CreatePerson(t, env.db, env.owner.ID, "Ada", "Lovelace")
	testutil.CreateProject(t, env.db, env.owner.ID, "Engine", time.Now(), person.ID)

	loaded, err := env.svc.GetMember(env.owner.ID, person.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Projects, 1)
	assert.Equal(t, "Engine", loaded.Projects[0].Project.Name)

	_, err = env.svc.GetMember(env.owner.ID, person.ID+100)
	assert.ErrorIs(t, err, ErrPersonNotFound)
}

func TestListMembers(t *testing.T) {
	env := newTeamEnv(t)
	testutil.CreatePerson(t, env.db, env.owner.ID, "Alan", "Turing")
	testutil.CreatePerson(t, env.db, env.owner.ID, "Ada", "Lovelace")
	testutil.CreatePerson(t, env.db, env.other.ID, "Grace", "Hopper")

	persons, total, err := env.svc.ListMembers(env.owner.ID, utils.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, persons, 2)
	assert.Equal(t, "Lovelace", persons[0].LastName)
}
