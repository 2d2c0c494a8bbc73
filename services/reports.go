package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Kariqs/agent-orders-api/models"
	"github.com/Kariqs/agent-orders-api/utils"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dayLayout = "2006-01-02"

// DailyReport is the payload stored in a report snapshot.
type DailyReport struct {
	Day       string                `json:"day"`
	Stats     models.OrderStats     `json:"stats"`
	Products  []models.ProductSales `json:"products"`
	Magazines []models.GroupStats   `json:"magazines"`
	Agents    []models.GroupStats   `json:"agents"`
}

// BuildDailyReport aggregates the orders created on day (local calendar day in loc).
func BuildDailyReport(ctx context.Context, db *gorm.DB, day time.Time, loc *time.Location) (*DailyReport, error) {
	start := time.Date(day.In(loc).Year(), day.In(loc).Month(), day.In(loc).Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)

	orders, err := FindOrders(ctx, db, OrderFilter{From: &start, To: &end})
	if err != nil {
		return nil, err
	}
	return &DailyReport{
		Day:       start.Format(dayLayout),
		Stats:     ComputeStats(orders),
		Products:  RankProducts(orders),
		Magazines: GroupStats(orders, ByMagazine),
		Agents:    GroupStats(orders, ByAgent),
	}, nil
}

// SnapshotDay stores (or replaces) the report for day.
func SnapshotDay(ctx context.Context, db *gorm.DB, day time.Time, loc *time.Location) (*models.ReportSnapshot, *DailyReport, error) {
	report, err := BuildDailyReport(ctx, db, day, loc)
	if err != nil {
		return nil, nil, err
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode report: %w", err)
	}

	snapshot := &models.ReportSnapshot{
		Day:       report.Day,
		Payload:   datatypes.JSON(payload),
		CreatedAt: Now().UTC(),
	}
	err = db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "created_at"}),
	}).Create(snapshot).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to store report: %w", err)
	}
	return snapshot, report, nil
}

// ListReports returns stored snapshots, newest day first.
func ListReports(ctx context.Context, db *gorm.DB, limit int) ([]models.ReportSnapshot, error) {
	var reports []models.ReportSnapshot
	query := db.WithContext(ctx).Order("day DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&reports).Error
	return reports, err
}

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ReportScheduler snapshots the previous day on a cron schedule and mails the result.
type ReportScheduler struct {
	DB       *gorm.DB
	Location *time.Location
	Mailer   MailSender
	To       []string

	sched *cron.Cron
}

func (r *ReportScheduler) Start(spec string) error {
	if r.Location == nil {
		r.Location = time.UTC
	}
	r.sched = cron.New(cron.WithLocation(r.Location), cron.WithParser(cronParser))
	if _, err := r.sched.AddFunc(spec, r.Run); err != nil {
		return fmt.Errorf("invalid report schedule %q: %w", spec, err)
	}
	r.sched.Start()
	zap.S().Infof("Daily report scheduled (%s)", spec)
	return nil
}

// Stop waits for a running job to finish.
func (r *ReportScheduler) Stop() {
	if r.sched == nil {
		return
	}
	<-r.sched.Stop().Done()
}

func (r *ReportScheduler) Run() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	loc := r.Location
	if loc == nil {
		loc = time.UTC
	}
	day := Now().In(loc).AddDate(0, 0, -1)
	_, report, err := SnapshotDay(ctx, r.DB, day, loc)
	if err != nil {
		zap.S().Errorf("Daily report failed: %v", err)
		return
	}
	zap.S().Infof("Daily report stored for %s (%d orders)", report.Day, report.Stats.TotalOrders)

	if r.Mailer == nil || len(r.To) == 0 {
		return
	}
	if err := r.mail(report); err != nil {
		zap.S().Errorf("Daily report email failed: %v", err)
	}
}

func (r *ReportScheduler) mail(report *DailyReport) error {
	rows := [][2]string{
		{"Comenzi", strconv.Itoa(report.Stats.TotalOrders)},
		{"Venit total", fmt.Sprintf("%.2f RON", report.Stats.TotalRevenue)},
		{"Unitati", strconv.Itoa(report.Stats.TotalUnits)},
		{"Baxuri", strconv.Itoa(report.Stats.TotalBoxes)},
		{"Valoare medie", fmt.Sprintf("%.2f RON", report.Stats.AverageOrderValue)},
	}
	for _, m := range report.Magazines {
		rows = append(rows, [2]string{m.Name, fmt.Sprintf("%d comenzi, %.2f RON", m.Orders, m.Revenue)})
	}
	body, err := utils.RenderEmail("notification.html", utils.EmailData{
		Heading: "Raport zilnic " + report.Day,
		Message: "Rezumatul comenzilor din ziua precedenta.",
		Rows:    rows,
	})
	if err != nil {
		return err
	}
	return r.Mailer.Send(r.To, "Raport comenzi "+report.Day, body)
}
