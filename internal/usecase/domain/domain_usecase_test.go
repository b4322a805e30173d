package domain

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/entities"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/platform"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/snapshot"
)

type platformMock struct{ mock.Mock }

var _ platform.Platform = (*platformMock)(nil)

func (m *platformMock) OnStart(_ context.Context) error { return nil }
func (m *platformMock) OnStop(_ context.Context) error  { return nil }

func (m *platformMock) Status() entities.SessionStatus {
	args := m.Called()
	return args.Get(0).(entities.SessionStatus)
}

func (m *platformMock) ListMembers(ctx context.Context, guildID string) ([]entities.User, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.User), args.Error(1)
}

func (m *platformMock) ResolveCatalog(ctx context.Context, guildID string) (*entities.Catalog, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Catalog), args.Error(1)
}

func (m *platformMock) SetDisplayName(ctx context.Context, guildID, userID, name string) error {
	return m.Called(ctx, guildID, userID, name).Error(0)
}

func (m *platformMock) GrantRole(ctx context.Context, guildID, userID, roleID string) error {
	return m.Called(ctx, guildID, userID, roleID).Error(0)
}

func (m *platformMock) RevokeRole(ctx context.Context, guildID, userID, roleID string) error {
	return m.Called(ctx, guildID, userID, roleID).Error(0)
}

type rowsMock struct{ mock.Mock }

var _ RowSource = (*rowsMock)(nil)

func (m *rowsMock) Rows(ctx context.Context) ([]entities.SheetRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.SheetRow), args.Error(1)
}

func testCatalog() *entities.Catalog {
	return entities.NewCatalog([]entities.Role{
		{ID: "t8097", Name: "Team 8097", Category: entities.TeamRole("8097")},
		{ID: "a8097", Name: "Team 8097 Alumni", Category: entities.TeamAlumniRole("8097")},
		{ID: "act", Name: "Active", Category: entities.RoleCategory{Kind: entities.KindActive}},
		{ID: "alm", Name: "Alumni", Category: entities.RoleCategory{Kind: entities.KindAlumni}},
	})
}

func testMembers() []entities.User {
	return []entities.User{
		{
			ID:          "1",
			Username:    "pat#1234",
			DisplayName: "Pat L.",
			RoleIDs:     map[string]bool{"t8097": true, "act": true},
		},
		{
			ID:          "9",
			Username:    "root",
			DisplayName: "Root",
			RoleIDs:     map[string]bool{"act": true},
			IsAdmin:     true,
		},
	}
}

func newUsecase(p *platformMock, rows *rowsMock) *Usecase {
	p.On("Status").Return(entities.SessionStatus{Connected: true}).Maybe()
	return New(zap.NewNop().Sugar(), context.Background(), p, rows, time.Second)
}

func TestBackupValidation(t *testing.T) {
	p := &platformMock{}
	uc := newUsecase(p, &rowsMock{})

	_, err := uc.Backup(context.Background(), "")
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	p.AssertNotCalled(t, "ListMembers", mock.Anything, mock.Anything)
}

func TestBackupProducesAttachment(t *testing.T) {
	p := &platformMock{}
	p.On("ResolveCatalog", mock.Anything, "guild-1").Return(testCatalog(), nil)
	p.On("ListMembers", mock.Anything, "guild-1").Return(testMembers(), nil)

	uc := newUsecase(p, &rowsMock{})
	attachment, err := uc.Backup(context.Background(), "guild-1")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(attachment.Filename, "roles_backup_"))
	require.True(t, strings.HasSuffix(attachment.Filename, ".csv.gz"))

	rows, err := snapshot.Decode(attachment.Data, testCatalog())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	p.AssertExpectations(t)
}

func TestRestoreMalformedAbortsBeforeMutations(t *testing.T) {
	p := &platformMock{}
	p.On("ResolveCatalog", mock.Anything, "guild-1").Return(testCatalog(), nil)

	uc := newUsecase(p, &rowsMock{})
	_, err := uc.Restore(context.Background(), "guild-1", []byte("not a backup"))
	require.ErrorIs(t, err, entities.ErrMalformedBackup)

	p.AssertNotCalled(t, "ListMembers", mock.Anything, mock.Anything)
	p.AssertNotCalled(t, "SetDisplayName", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	p.AssertNotCalled(t, "GrantRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	p.AssertNotCalled(t, "RevokeRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRestoreEmptyFileIsMalformed(t *testing.T) {
	uc := newUsecase(&platformMock{}, &rowsMock{})
	_, err := uc.Restore(context.Background(), "guild-1", nil)
	require.ErrorIs(t, err, entities.ErrMalformedBackup)
}

func TestRestoreAppliesBackupState(t *testing.T) {
	catalog := testCatalog()

	// Backup captures pat as an alumni; live state has pat on the team.
	backupRoster := entities.NewRoster([]entities.User{
		{
			ID:          "1",
			Username:    "pat#1234",
			DisplayName: "Pat L.",
			RoleIDs:     map[string]bool{"a8097": true, "alm": true},
		},
	})
	backup, err := snapshot.Encode(backupRoster, catalog)
	require.NoError(t, err)

	p := &platformMock{}
	p.On("ResolveCatalog", mock.Anything, "guild-1").Return(catalog, nil)
	p.On("ListMembers", mock.Anything, "guild-1").Return(testMembers(), nil)
	p.On("RevokeRole", mock.Anything, "guild-1", "1", "t8097").Return(nil)
	p.On("RevokeRole", mock.Anything, "guild-1", "1", "act").Return(nil)
	p.On("GrantRole", mock.Anything, "guild-1", "1", "a8097").Return(nil)
	p.On("GrantRole", mock.Anything, "guild-1", "1", "alm").Return(nil)

	uc := newUsecase(p, &rowsMock{})
	result, err := uc.Restore(context.Background(), "guild-1", backup)
	require.NoError(t, err)

	require.Equal(t, 4, result.Planned)
	require.Len(t, result.Report.Applied, 4)
	require.Empty(t, result.Report.Failed)
	require.NotNil(t, result.Before)
	require.NotNil(t, result.After)
	p.AssertExpectations(t)
}

func TestUpdateReconcilesAgainstSheet(t *testing.T) {
	catalog := testCatalog()

	p := &platformMock{}
	p.On("ResolveCatalog", mock.Anything, "guild-1").Return(catalog, nil)
	p.On("ListMembers", mock.Anything, "guild-1").Return(testMembers(), nil)
	p.On("RevokeRole", mock.Anything, "guild-1", "1", "t8097").Return(nil)
	p.On("GrantRole", mock.Anything, "guild-1", "1", "a8097").Return(nil)
	p.On("RevokeRole", mock.Anything, "guild-1", "1", "act").Return(nil)
	p.On("GrantRole", mock.Anything, "guild-1", "1", "alm").Return(nil)

	rows := &rowsMock{}
	rows.On("Rows", mock.Anything).Return([]entities.SheetRow{
		{Username: "pat#1234", Team: ""},
		{Username: "root", FirstName: "Rude", LastInitial: "T", Team: "8097"},
		{Username: ""},
	}, nil)

	uc := newUsecase(p, rows)
	result, err := uc.Update(context.Background(), "guild-1")
	require.NoError(t, err)

	require.Equal(t, 4, result.Planned, "admin and empty-username rows contribute nothing")
	require.Len(t, result.Report.Applied, 4)
	require.NotNil(t, result.Before)
	require.NotNil(t, result.After)

	// The admin stays untouched even though the sheet names them.
	p.AssertNotCalled(t, "SetDisplayName", mock.Anything, "guild-1", "9", mock.Anything)
	p.AssertNotCalled(t, "GrantRole", mock.Anything, "guild-1", "9", mock.Anything)
	p.AssertExpectations(t)
}

func TestUpdateUnknownRoleIsFatal(t *testing.T) {
	p := &platformMock{}
	p.On("ResolveCatalog", mock.Anything, "guild-1").Return(nil, entities.ErrUnknownRole)

	uc := newUsecase(p, &rowsMock{})
	_, err := uc.Update(context.Background(), "guild-1")
	require.ErrorIs(t, err, entities.ErrUnknownRole)
	p.AssertNotCalled(t, "ListMembers", mock.Anything, mock.Anything)
}

func TestUpdatePartialFailureStillReports(t *testing.T) {
	catalog := testCatalog()

	p := &platformMock{}
	p.On("ResolveCatalog", mock.Anything, "guild-1").Return(catalog, nil)
	p.On("ListMembers", mock.Anything, "guild-1").Return(testMembers(), nil)
	p.On("RevokeRole", mock.Anything, "guild-1", "1", "t8097").Return(entities.ErrPlatformMutation)
	p.On("GrantRole", mock.Anything, "guild-1", "1", "a8097").Return(nil)
	p.On("RevokeRole", mock.Anything, "guild-1", "1", "act").Return(nil)
	p.On("GrantRole", mock.Anything, "guild-1", "1", "alm").Return(nil)

	rows := &rowsMock{}
	rows.On("Rows", mock.Anything).Return([]entities.SheetRow{
		{Username: "pat#1234", Team: ""},
	}, nil)

	uc := newUsecase(p, rows)
	result, err := uc.Update(context.Background(), "guild-1")
	require.NoError(t, err, "partial failure is reported, not returned")
	require.Len(t, result.Report.Applied, 3)
	require.Len(t, result.Report.Failed, 1)
	require.NotNil(t, result.After, "after snapshot survives partial failure")
}

func TestOperationsRequireConnection(t *testing.T) {
	p := &platformMock{}
	p.On("Status").Return(entities.SessionStatus{Connected: false})

	uc := New(zap.NewNop().Sugar(), context.Background(), p, &rowsMock{}, time.Second)

	_, err := uc.Backup(context.Background(), "guild-1")
	require.ErrorIs(t, err, entities.ErrNotConnected)

	_, err = uc.Update(context.Background(), "guild-1")
	require.ErrorIs(t, err, entities.ErrNotConnected)

	p.AssertNotCalled(t, "ResolveCatalog", mock.Anything, mock.Anything)
}
