package services

import (
	"testing"

	"github.com/ecosenseai/ecosense/db"
	"github.com/ecosenseai/ecosense/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/ecosenseai/ecosense/errors"
)

func TestCreateReportCreditsPoints(t *testing.T) {
	gormDB := newTestDB(t)
	svc := newReportService(gormDB)
	ledger := db.NewLedgerRepo(gormDB)
	user := createUser(t, gormDB, "citizen@example.com", models.RoleCitizen, 0)

	report, err := svc.CreateReport(user.ID, models.RoleCitizen, &models.CreateReportRequest{
		Latitude:    f64(-1.2921),
		Longitude:   f64(36.8219),
		Description: "Overflowing bin near the market",
		WasteType:   "plastic",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, report.Status)
	assert.Equal(t, 10, report.PointsAwarded)

	var fresh models.User
	require.NoError(t, gormDB.DB.First(&fresh, "id = ?", user.ID).Error)
	assert.Equal(t, 10, fresh.PointsBalance)

	transactions, err := ledger.GetUserTransactions(user.ID, 10)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, models.TransactionEarned, transactions[0].Type)
	assert.Equal(t, report.ID, transactions[0].ReferenceID)
}

func TestCreateReportDefaults(t *testing.T) {
	gormDB := newTestDB(t)
	svc := newReportService(gormDB)
	user := createUser(t, gormDB, "citizen@example.com", models.RoleCitizen, 0)

	report, err := svc.CreateReport(user.ID, models.RoleCitizen, &models.CreateReportRequest{
		Latitude:  f64(-1.3),
		Longitude: f64(36.8),
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "other", report.WasteType)
	assert.Equal(t, models.SeverityMedium, report.Severity)
}

// A report on the equator or prime meridian is valid input; zero
// coordinates must not be treated as missing.
func TestCreateReportZeroCoordinates(t *testing.T) {
	gormDB := newTestDB(t)
	svc := newReportService(gormDB)
	user := createUser(t, gormDB, "equator@example.com", models.RoleCitizen, 0)

	report, err := svc.CreateReport(user.ID, models.RoleCitizen, &models.CreateReportRequest{
		Latitude:  f64(0),
		Longitude: f64(0),
	}, "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, report.Latitude)
	assert.Equal(t, 0.0, report.Longitude)
}

func TestCreateReportCoordinateBounds(t *testing.T) {
	gormDB := newTestDB(t)
	svc := newReportService(gormDB)
	user := createUser(t, gormDB, "bounds@example.com", models.RoleCitizen, 0)

	cases := []struct {
		lat *float64
		lng *float64
	}{
		{f64(91), f64(36.8)},
		{f64(-1.3), f64(181)},
		{nil, f64(36.8)},
		{f64(-1.3), nil},
	}
	for _, tc := range cases {
		_, err := svc.CreateReport(user.ID, models.RoleCitizen, &models.CreateReportRequest{
			Latitude:  tc.lat,
			Longitude: tc.lng,
		}, "")
		require.Error(t, err)
		var domainErr *errs.Error
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, 400, domainErr.Status)
	}
}

func TestCreateReportInvalidWasteType(t *testing.T) {
	gormDB := newTestDB(t)
	svc := newReportService(gormDB)
	user := createUser(t, gormDB, "citizen@example.com", models.RoleCitizen, 0)

	_, err := svc.CreateReport(user.ID, models.RoleCitizen, &models.CreateReportRequest{
		Latitude:  f64(-1.3),
		Longitude: f64(36.8),
		WasteType: "nuclear",
	}, "")
	require.Error(t, err)
	var domainErr *errs.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 400, domainErr.Status)
}

func TestCreateReportForbiddenForAdmin(t *testing.T) {
	gormDB := newTestDB(t)
	svc := newReportService(gormDB)
	admin := createUser(t, gormDB, "admin@example.com", models.RoleAdmin, 0)

	_, err := svc.CreateReport(admin.ID, models.RoleAdmin, &models.CreateReportRequest{
		Latitude:  f64(-1.3),
		Longitude: f64(36.8),
	}, "")
	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestUpdateReportStatusVerifiedBonus(t *testing.T) {
	gormDB := newTestDB(t)
	svc := newReportService(gormDB)
	user := createUser(t, gormDB, "citizen@example.com", models.RoleCitizen, 0)

	report, err := svc.CreateReport(user.ID, models.RoleCitizen, &models.CreateReportRequest{
		Latitude:  f64(-1.3),
		Longitude: f64(36.8),
	}, "")
	require.NoError(t, err)

	updated, err := svc.UpdateReportStatus(models.RoleAdmin, report.ID, models.StatusVerified)
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerified, updated.Status)

	// 10 on creation plus the 15 point verification bonus.
	var fresh models.User
	require.NoError(t, gormDB.DB.First(&fresh, "id = ?", user.ID).Error)
	assert.Equal(t, 25, fresh.PointsBalance)
}

func TestVerifiedBonusCreditedOnce(t *testing.T) {
	gormDB := newTestDB(t)
	svc := newReportService(gormDB)
	user := createUser(t, gormDB, "citizen@example.com", models.RoleCitizen, 0)

	report, err := svc.CreateReport(user.ID, models.RoleCitizen, &models.CreateReportRequest{
		Latitude:  f64(-1.3),
		Longitude: f64(36.8),
	}, "")
	require.NoError(t, err)

	_, err = svc.UpdateReportStatus(models.RoleAdmin, report.ID, models.StatusVerified)
	require.NoError(t, err)
	_, err = svc.UpdateReportStatus(models.RoleAdmin, report.ID, models.StatusAssigned)
	require.NoError(t, err)
	_, err = svc.UpdateReportStatus(models.RoleAdmin, report.ID, models.StatusVerified)
	require.NoError(t, err)

	var fresh models.User
	require.NoError(t, gormDB.DB.First(&fresh, "id = ?", user.ID).Error)
	assert.Equal(t, 25, fresh.PointsBalance)

	sum, err := db.NewLedgerRepo(gormDB).SumTransactionAmounts(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, sum)
}

func TestUpdateReportStatusTerminal(t *testing.T) {
	gormDB := newTestDB(t)
	svc := newReportService(gormDB)
	user := createUser(t, gormDB, "citizen@example.com", models.RoleCitizen, 0)

	report, err := svc.CreateReport(user.ID, models.RoleCitizen, &models.CreateReportRequest{
		Latitude:  f64(-1.3),
		Longitude: f64(36.8),
	}, "")
	require.NoError(t, err)

	_, err = svc.UpdateReportStatus(models.RoleAdmin, report.ID, models.StatusResolved)
	require.NoError(t, err)

	_, err = svc.UpdateReportStatus(models.RoleAdmin, report.ID, models.StatusVerified)
	require.Error(t, err)
	var domainErr *errs.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 409, domainErr.Status)
}

func TestUpdateReportStatusValidation(t *testing.T) {
	gormDB := newTestDB(t)
	svc := newReportService(gormDB)
	user := createUser(t, gormDB, "citizen@example.com", models.RoleCitizen, 0)

	report, err := svc.CreateReport(user.ID, models.RoleCitizen, &models.CreateReportRequest{
		Latitude:  f64(-1.3),
		Longitude: f64(36.8),
	}, "")
	require.NoError(t, err)

	// Citizens cannot run the status workflow.
	_, err = svc.UpdateReportStatus(models.RoleCitizen, report.ID, models.StatusVerified)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	// A report can never be moved back to pending.
	_, err = svc.UpdateReportStatus(models.RoleAdmin, report.ID, models.StatusPending)
	require.Error(t, err)

	_, err = svc.UpdateReportStatus(models.RoleAdmin, report.ID, "archived")
	require.Error(t, err)

	_, err = svc.UpdateReportStatus(models.RoleAdmin, uuid.New(), models.StatusVerified)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestListReports(t *testing.T) {
	gormDB := newTestDB(t)
	svc := newReportService(gormDB)
	user := createUser(t, gormDB, "citizen@example.com", models.RoleCitizen, 0)

	for i := 0; i < 3; i++ {
		_, err := svc.CreateReport(user.ID, models.RoleCitizen, &models.CreateReportRequest{
			Latitude:  f64(-1.3),
			Longitude: f64(36.8),
			WasteType: "organic",
		}, "")
		require.NoError(t, err)
	}

	list, err := svc.ListReports(models.ReportFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.Total)
	assert.Len(t, list.Reports, 2)

	list, err = svc.ListReports(models.ReportFilter{Status: models.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.Total)

	_, err = svc.ListReports(models.ReportFilter{Status: "archived"})
	require.Error(t, err)
}

func TestReportStats(t *testing.T) {
	gormDB := newTestDB(t)
	svc := newReportService(gormDB)
	user := createUser(t, gormDB, "citizen@example.com", models.RoleCitizen, 0)

	report, err := svc.CreateReport(user.ID, models.RoleCitizen, &models.CreateReportRequest{
		Latitude:  f64(-1.3),
		Longitude: f64(36.8),
		WasteType: "plastic",
	}, "")
	require.NoError(t, err)
	_, err = svc.UpdateReportStatus(models.RoleFieldAgent, report.ID, models.StatusVerified)
	require.NoError(t, err)

	stats, err := svc.GetReportStats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalReports)
	require.Len(t, stats.ByStatus, 1)
	assert.Equal(t, models.StatusVerified, stats.ByStatus[0].Status)
}
