package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tesouraria/backend/internal/dues"
	"github.com/tesouraria/backend/internal/httputil"
	"github.com/tesouraria/backend/internal/models"
)

type MemberEditable struct {
	Name          string          `json:"name" example:"Maria Souza"`
	Email         string          `json:"email" example:"maria@example.com" default:""`
	Note          string          `json:"note" default:""`
	MonthlyFee    decimal.Decimal `json:"monthlyFee" example:"50"`
	JoinedOn      time.Time       `json:"joinedOn" example:"2023-05-01T00:00:00Z"`
	ReactivatedOn *time.Time      `json:"reactivatedOn"`
	Departed      bool            `json:"departed" default:"false"`
	OnLeave       bool            `json:"onLeave" default:"false"`
	Exempt        bool            `json:"exempt" default:"false"`
	Archived      bool            `json:"archived" default:"false"`
}

func (editable MemberEditable) model() models.Member {
	return models.Member{
		Name:          editable.Name,
		Email:         editable.Email,
		Note:          editable.Note,
		MonthlyFee:    editable.MonthlyFee,
		JoinedOn:      editable.JoinedOn,
		ReactivatedOn: editable.ReactivatedOn,
		Departed:      editable.Departed,
		OnLeave:       editable.OnLeave,
		Exempt:        editable.Exempt,
		Archived:      editable.Archived,
	}
}

// Member is the API representation of a member. The overdue months, total
// due and payment status are derived on every read.
type Member struct {
	models.DefaultModel
	MemberEditable
	OverdueMonths []dues.OverdueMonth `json:"overdueMonths"`
	TotalDue      decimal.Decimal     `json:"totalDue" example:"150"`
	PaymentStatus dues.PaymentStatus  `json:"paymentStatus" example:"Atrasado"`
}

func (co Controller) newMember(model models.Member) (Member, error) {
	payments, err := model.Payments(models.DB)
	if err != nil {
		return Member{}, err
	}

	standing := dues.StandingFor(model, payments, time.Now(), co.DuesPolicy)

	return Member{
		DefaultModel: model.DefaultModel,
		MemberEditable: MemberEditable{
			Name:          model.Name,
			Email:         model.Email,
			Note:          model.Note,
			MonthlyFee:    model.MonthlyFee,
			JoinedOn:      model.JoinedOn,
			ReactivatedOn: model.ReactivatedOn,
			Departed:      model.Departed,
			OnLeave:       model.OnLeave,
			Exempt:        model.Exempt,
			Archived:      model.Archived,
		},
		OverdueMonths: standing.OverdueMonths,
		TotalDue:      standing.TotalDue,
		PaymentStatus: standing.Status,
	}, nil
}

type MemberResponse struct {
	Data  *Member `json:"data"`
	Error *string `json:"error" example:"there is no member matching your query"`
}

type MemberListResponse struct {
	Data  []Member `json:"data"`
	Error *string  `json:"error" example:"there is no member matching your query"`
}

// RegisterMemberRoutes registers the routes for members with the
// RouterGroup that is passed.
func (co Controller) RegisterMemberRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", co.GetMembers)
	r.POST("", co.CreateMember)

	r.OPTIONS("/:id", func(c *gin.Context) { resourceOptionsDetail(c, models.Member{}) })
	r.GET("/:id", co.GetMember)
	r.PATCH("/:id", co.UpdateMember)
	r.DELETE("/:id", co.DeleteMember)
}

// @Summary		List members
// @Description	Returns a list of members with derived dues standing
// @Tags			Members
// @Produce		json
// @Success		200	{object}	MemberListResponse
// @Failure		500	{object}	MemberListResponse
// @Router			/v1/members [get]
func (co Controller) GetMembers(c *gin.Context) {
	var members []models.Member
	err := models.DB.Order("name ASC").Find(&members).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberListResponse{Error: &e})
		return
	}

	data := make([]Member, 0, len(members))
	for _, member := range members {
		m, err := co.newMember(member)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), MemberListResponse{Error: &e})
			return
		}
		data = append(data, m)
	}

	c.JSON(http.StatusOK, MemberListResponse{Data: data})
}

// @Summary		Get member
// @Description	Returns a specific member with derived dues standing
// @Tags			Members
// @Produce		json
// @Success		200	{object}	MemberResponse
// @Failure		400	{object}	MemberResponse
// @Failure		404	{object}	MemberResponse
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/members/{id} [get]
func (co Controller) GetMember(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, MemberResponse{Error: &e})
		return
	}

	var member models.Member
	err := models.DB.First(&member, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberResponse{Error: &e})
		return
	}

	data, err := co.newMember(member)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, MemberResponse{Data: &data})
}

// @Summary		Create member
// @Description	Creates a new member
// @Tags			Members
// @Accept			json
// @Produce		json
// @Success		201	{object}	MemberResponse
// @Failure		400	{object}	MemberResponse
// @Param			member	body	MemberEditable	true	"Member"
// @Router			/v1/members [post]
func (co Controller) CreateMember(c *gin.Context) {
	var editable MemberEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, MemberResponse{Error: &e})
		return
	}

	member := editable.model()
	err := models.DB.Create(&member).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberResponse{Error: &e})
		return
	}

	co.invalidate("members", member.ID)

	data, err := co.newMember(member)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, MemberResponse{Data: &data})
}

// @Summary		Update member
// @Description	Updates a member. Only values to be updated need to be specified.
// @Tags			Members
// @Accept			json
// @Produce		json
// @Success		200	{object}	MemberResponse
// @Failure		400	{object}	MemberResponse
// @Failure		404	{object}	MemberResponse
// @Param			id		path	string			true	"ID formatted as string"
// @Param			member	body	MemberEditable	true	"Member"
// @Router			/v1/members/{id} [patch]
func (co Controller) UpdateMember(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, MemberResponse{Error: &e})
		return
	}

	var member models.Member
	err := models.DB.First(&member, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberResponse{Error: &e})
		return
	}

	updateFields, err := httputil.BodyFields(c, MemberEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, MemberResponse{Error: &e})
		return
	}

	var editable MemberEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, MemberResponse{Error: &e})
		return
	}

	err = models.DB.Model(&member).Select("", updateFields...).Updates(editable.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberResponse{Error: &e})
		return
	}

	co.invalidate("members", member.ID)

	data, err := co.newMember(member)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, MemberResponse{Data: &data})
}

// @Summary		Delete member
// @Description	Deletes a member. Members with recorded payments cannot be deleted, archive them instead.
// @Tags			Members
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		409	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/members/{id} [delete]
func (co Controller) DeleteMember(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var member models.Member
	err := models.DB.First(&member, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	payments, err := member.Payments(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if len(payments) > 0 {
		c.JSON(http.StatusConflict, httpError{Error: "the member has recorded payments, archive the member instead"})
		return
	}

	err = models.DB.Delete(&member).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	co.invalidate("members", member.ID)

	c.Status(http.StatusNoContent)
}
