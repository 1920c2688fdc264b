package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tesouraria/backend/internal/dues"
	"github.com/tesouraria/backend/internal/httputil"
	"github.com/tesouraria/backend/internal/models"
	"github.com/tesouraria/backend/internal/reports"
	ez_uuid "github.com/tesouraria/backend/internal/uuid"
)

type OverdueReportResponse struct {
	Data  *reports.OverdueReport `json:"data"`
	Error *string                `json:"error" example:"there is no member matching your query"`
}

type RevenueReportResponse struct {
	Data  *reports.RevenueReport `json:"data"`
	Error *string                `json:"error" example:"the start and end query parameters must be set"`
}

type FinancialReportResponse struct {
	Data  *reports.FinancialReport `json:"data"`
	Error *string                  `json:"error" example:"the report dimension must be category, project or tag"`
}

type DREReportResponse struct {
	Data  *reports.DREReport `json:"data"`
	Error *string            `json:"error" example:"the start and end query parameters must be set"`
}

// ReportRangeQuery is the date range shared by the revenue and DRE reports.
// Both dates are inclusive, the end date covers its whole day.
type ReportRangeQuery struct {
	Start time.Time `form:"start" time_format:"2006-01-02"`
	End   time.Time `form:"end" time_format:"2006-01-02"`
}

func (q ReportRangeQuery) endOfDay() time.Time {
	return q.End.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// FinancialReportQuery selects and narrows the financial report.
type FinancialReportQuery struct {
	Dimension  reports.Dimension      `form:"dimension"`
	Start      time.Time              `form:"start" time_format:"2006-01-02"`
	End        time.Time              `form:"end" time_format:"2006-01-02"`
	Type       models.TransactionType `form:"type"`
	AccountIDs []ez_uuid.UUID         `form:"account"`
	CategoryID ez_uuid.UUID           `form:"category"`
	ProjectID  ez_uuid.UUID           `form:"project"`
	TagIDs     []ez_uuid.UUID         `form:"tag"`
}

// RegisterReportRoutes registers the routes for reports with the RouterGroup
// that is passed.
func (co Controller) RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/overdue", httputil.OptionsGet)
	r.GET("/overdue", co.GetOverdueReport)

	r.OPTIONS("/revenue", httputil.OptionsGet)
	r.GET("/revenue", co.GetRevenueReport)

	r.OPTIONS("/financial", httputil.OptionsGet)
	r.GET("/financial", co.GetFinancialReport)

	r.OPTIONS("/dre", httputil.OptionsGet)
	r.GET("/dre", co.GetDREReport)
}

// cacheKey identifies a report payload by its full request URI, so distinct
// filter combinations are cached separately.
func cacheKey(c *gin.Context) string {
	return c.Request.URL.RequestURI()
}

// @Summary		Overdue report
// @Description	Returns every non-archived member that owes dues, with the months owed and a grand total.
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	OverdueReportResponse
// @Failure		500	{object}	OverdueReportResponse
// @Router			/v1/reports/overdue [get]
func (co Controller) GetOverdueReport(c *gin.Context) {
	if cached, ok := co.ReportCache.Get(cacheKey(c)); ok {
		report := cached.(reports.OverdueReport)
		c.JSON(http.StatusOK, OverdueReportResponse{Data: &report})
		return
	}

	var members []models.Member
	err := models.DB.Order("name ASC").Find(&members).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OverdueReportResponse{Error: &e})
		return
	}

	now := time.Now()
	standings := make([]dues.Standing, 0, len(members))
	for _, member := range members {
		payments, err := member.Payments(models.DB)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), OverdueReportResponse{Error: &e})
			return
		}

		standings = append(standings, dues.StandingFor(member, payments, now, co.DuesPolicy))
	}

	report := reports.BuildOverdue(standings, now)
	co.ReportCache.Set(cacheKey(c), report, "members", "payments")

	c.JSON(http.StatusOK, OverdueReportResponse{Data: &report})
}

// @Summary		Revenue report
// @Description	Returns the income transactions of a date range with the paying member joined in. Transfers are not revenue and never appear.
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	RevenueReportResponse
// @Failure		400	{object}	RevenueReportResponse
// @Param			start	query	string	true	"Start date (inclusive)"
// @Param			end		query	string	true	"End date (inclusive)"
// @Router			/v1/reports/revenue [get]
func (co Controller) GetRevenueReport(c *gin.Context) {
	var query ReportRangeQuery
	if err := c.Bind(&query); err != nil {
		e := httputil.ErrInvalidDate.Error()
		c.JSON(http.StatusBadRequest, RevenueReportResponse{Error: &e})
		return
	}

	if query.Start.IsZero() || query.End.IsZero() {
		e := errRangeRequired.Error()
		c.JSON(http.StatusBadRequest, RevenueReportResponse{Error: &e})
		return
	}

	if cached, ok := co.ReportCache.Get(cacheKey(c)); ok {
		report := cached.(reports.RevenueReport)
		c.JSON(http.StatusOK, RevenueReportResponse{Data: &report})
		return
	}

	var transactions []models.Transaction
	err := models.DB.
		Where(models.Transaction{Type: models.TransactionIncome}).
		Order("datetime(date) ASC").
		Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RevenueReportResponse{Error: &e})
		return
	}

	var payments []models.Payment
	err = models.DB.Where("transaction_id IS NOT NULL").Find(&payments).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RevenueReportResponse{Error: &e})
		return
	}

	var members []models.Member
	err = models.DB.Find(&members).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RevenueReportResponse{Error: &e})
		return
	}

	report := reports.BuildRevenue(transactions, payments, members, query.Start, query.endOfDay())
	co.ReportCache.Set(cacheKey(c), report, "transactions", "payments", "members")

	c.JSON(http.StatusOK, RevenueReportResponse{Data: &report})
}

// @Summary		Financial report
// @Description	Groups the filtered transactions by category, project or tag with per-month buckets. Every entry of the chosen dimension appears exactly once, entries without activity are marked.
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	FinancialReportResponse
// @Failure		400	{object}	FinancialReportResponse
// @Router			/v1/reports/financial [get]
// @Param			dimension	query	string	true	"category, project or tag"
// @Param			start		query	string	false	"Start date (inclusive)"
// @Param			end			query	string	false	"End date (inclusive)"
// @Param			type		query	string	false	"Filter by transaction type"
// @Param			account		query	string	false	"Filter by account ID, repeatable"
// @Param			category	query	string	false	"Filter by category ID"
// @Param			project		query	string	false	"Filter by project ID"
// @Param			tag			query	string	false	"Filter by tag ID, repeatable"
func (co Controller) GetFinancialReport(c *gin.Context) {
	var query FinancialReportQuery
	if err := c.Bind(&query); err != nil {
		e := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, FinancialReportResponse{Error: &e})
		return
	}

	if cached, ok := co.ReportCache.Get(cacheKey(c)); ok {
		report := cached.(reports.FinancialReport)
		c.JSON(http.StatusOK, FinancialReportResponse{Data: &report})
		return
	}

	catalog, err := reportCatalog(query.Dimension)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, FinancialReportResponse{Error: &e})
		return
	}

	var transactions []models.Transaction
	err = models.DB.Preload("Tags").Order("datetime(date) ASC").Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FinancialReportResponse{Error: &e})
		return
	}

	filter := reports.FinancialFilter{
		Start: query.Start,
		Type:  query.Type,
	}

	if !query.End.IsZero() {
		filter.End = query.End.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	for _, id := range query.AccountIDs {
		filter.AccountIDs = append(filter.AccountIDs, id.UUID)
	}

	if query.CategoryID != ez_uuid.Nil {
		filter.CategoryID = &query.CategoryID.UUID
	}

	if query.ProjectID != ez_uuid.Nil {
		filter.ProjectID = &query.ProjectID.UUID
	}

	for _, id := range query.TagIDs {
		filter.TagIDs = append(filter.TagIDs, id.UUID)
	}

	report := reports.BuildFinancial(transactions, catalog, query.Dimension, filter)
	co.ReportCache.Set(cacheKey(c), report,
		"transactions", "categories", "projects", "tags", "accounts")

	c.JSON(http.StatusOK, FinancialReportResponse{Data: &report})
}

// @Summary		Income statement
// @Description	Returns the income statement (DRE) of a date range: gross revenue, other income and operating expenses with the net result. Transfers never appear.
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	DREReportResponse
// @Failure		400	{object}	DREReportResponse
// @Param			start	query	string	true	"Start date (inclusive)"
// @Param			end		query	string	true	"End date (inclusive)"
// @Router			/v1/reports/dre [get]
func (co Controller) GetDREReport(c *gin.Context) {
	var query ReportRangeQuery
	if err := c.Bind(&query); err != nil {
		e := httputil.ErrInvalidDate.Error()
		c.JSON(http.StatusBadRequest, DREReportResponse{Error: &e})
		return
	}

	if query.Start.IsZero() || query.End.IsZero() {
		e := errRangeRequired.Error()
		c.JSON(http.StatusBadRequest, DREReportResponse{Error: &e})
		return
	}

	if cached, ok := co.ReportCache.Get(cacheKey(c)); ok {
		report := cached.(reports.DREReport)
		c.JSON(http.StatusOK, DREReportResponse{Data: &report})
		return
	}

	var transactions []models.Transaction
	err := models.DB.Order("datetime(date) ASC").Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DREReportResponse{Error: &e})
		return
	}

	var categories []models.Category
	err = models.DB.Order("created_at ASC").Find(&categories).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DREReportResponse{Error: &e})
		return
	}

	report := reports.BuildDRE(transactions, categories, query.Start, query.endOfDay())
	co.ReportCache.Set(cacheKey(c), report, "transactions", "categories")

	c.JSON(http.StatusOK, DREReportResponse{Data: &report})
}

// reportCatalog loads the full entry list of a dimension in creation order.
func reportCatalog(dimension reports.Dimension) ([]reports.CatalogEntry, error) {
	var entries []reports.CatalogEntry

	appendEntry := func(id uuid.UUID, name string) {
		entries = append(entries, reports.CatalogEntry{ID: id, Name: name})
	}

	switch dimension {
	case reports.DimensionCategory:
		var categories []models.Category
		err := models.DB.Order("created_at ASC").Find(&categories).Error
		if err != nil {
			return nil, err
		}
		for _, category := range categories {
			appendEntry(category.ID, category.Name)
		}
	case reports.DimensionProject:
		var projects []models.Project
		err := models.DB.Order("created_at ASC").Find(&projects).Error
		if err != nil {
			return nil, err
		}
		for _, project := range projects {
			appendEntry(project.ID, project.Name)
		}
	case reports.DimensionTag:
		var tags []models.Tag
		err := models.DB.Order("created_at ASC").Find(&tags).Error
		if err != nil {
			return nil, err
		}
		for _, tag := range tags {
			appendEntry(tag.ID, tag.Name)
		}
	default:
		return nil, errDimensionInvalid
	}

	return entries, nil
}
