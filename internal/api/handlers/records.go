package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jroosing/zonekeeper/internal/api/middleware"
	"github.com/jroosing/zonekeeper/internal/api/models"
	"github.com/jroosing/zonekeeper/internal/records"
	"github.com/jroosing/zonekeeper/internal/reverse"
	"github.com/jroosing/zonekeeper/internal/validation"
)

// flagParam reads a boolean query parameter such as ?reverse=1.
func flagParam(c *gin.Context, name string) bool {
	v := strings.ToLower(c.Query(name))
	return v == "1" || v == "true" || v == "yes"
}

// ListRecords godoc
// @Summary List a zone's records
// @Description Returns all records in the zone, SOA first, with RRset comments attached
// @Tags records
// @Produce json
// @Param id path int true "Zone ID"
// @Success 200 {object} models.RecordListResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /zones/{id}/records [get]
func (h *Handler) ListRecords(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if _, err := h.zones.Get(ctx, id); err != nil {
		writeError(c, err)
		return
	}
	rows, err := h.db.RecordsByZone(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]models.RecordResponse, 0, len(rows))
	for _, r := range rows {
		resp := *recordResponse(&r)
		if h.cfg.Interface.ShowRecordComments {
			if comment, err := h.db.FindComment(ctx, id, r.Name, r.Type); err == nil {
				resp.Comment = comment.Comment
			}
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, models.RecordListResponse{Records: out, Count: len(out)})
}

// CreateRecord godoc
// @Summary Create a record
// @Description Creates a record in the zone. With ?reverse=1 an A/AAAA record also gets a paired PTR in the best-matching reverse zone; a missing reverse zone downgrades to a warning.
// @Tags records
// @Accept json
// @Produce json
// @Param id path int true "Zone ID"
// @Param reverse query bool false "Also create the paired PTR record"
// @Param forward query bool false "For a PTR record, also create the paired A/AAAA record"
// @Param record body models.RecordRequest true "Record to create"
// @Success 201 {object} models.MutationResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /zones/{id}/records [post]
func (h *Handler) CreateRecord(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	wantReverse := flagParam(c, "reverse")
	wantForward := flagParam(c, "forward")
	if (wantReverse || wantForward) && !h.cfg.Interface.AddReverseRecord {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "paired record creation is disabled"})
		return
	}

	ctx := c.Request.Context()
	actor := middleware.Actor(c)
	res, err := h.records.Add(ctx, records.AddInput{
		ZoneID:   id,
		Name:     req.Name,
		Type:     req.Type,
		Content:  req.Content,
		TTL:      req.TTL,
		Prio:     req.Prio,
		Comment:  h.commentIfEnabled(req.Comment),
		Actor:    actor,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	warning := res.Warning
	rtype := res.Record.Type
	if wantReverse && (rtype == validation.TypeA || rtype == validation.TypeAAAA) {
		out, err := h.reverse.Create(ctx, reverse.CreateInput{
			ForwardName: res.Record.Name,
			Type:        rtype,
			Content:     res.Record.Content,
			TTL:         req.TTL,
			Comment:     h.commentIfEnabled(req.Comment),
			Actor:       actor,
			ClientIP:    c.ClientIP(),
		})
		switch {
		case err != nil:
			warning = joinWarnings(warning, "PTR creation failed: "+err.Error())
		case !out.OK:
			warning = joinWarnings(warning, out.Message)
		default:
			warning = joinWarnings(warning, out.Warning)
		}
	}
	if wantForward && rtype == validation.TypePTR {
		out, err := h.reverse.CreateForward(ctx, res.Record.Name, res.Record.Content,
			req.TTL, h.commentIfEnabled(req.Comment), actor, c.ClientIP())
		switch {
		case err != nil:
			warning = joinWarnings(warning, "forward record creation failed: "+err.Error())
		case !out.OK:
			warning = joinWarnings(warning, out.Message)
		default:
			warning = joinWarnings(warning, out.Warning)
		}
	}

	c.JSON(http.StatusCreated, models.MutationResponse{
		Record:  recordResponse(res.Record),
		Warning: warning,
	})
}

// BulkCreateRecords godoc
// @Summary Create many records best-effort
// @Description Attempts every record in the batch; failures are tallied and reported, never aborting the rest.
// @Tags records
// @Accept json
// @Produce json
// @Param id path int true "Zone ID"
// @Param records body models.BulkRecordsRequest true "Records to create"
// @Success 200 {object} models.BulkRecordsResponse
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /zones/{id}/records/bulk [post]
func (h *Handler) BulkCreateRecords(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.BulkRecordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	actor := middleware.Actor(c)
	resp := models.BulkRecordsResponse{}
	for _, r := range req.Records {
		_, err := h.records.Add(ctx, records.AddInput{
			ZoneID:   id,
			Name:     r.Name,
			Type:     r.Type,
			Content:  r.Content,
			TTL:      r.TTL,
			Prio:     r.Prio,
			Comment:  h.commentIfEnabled(r.Comment),
			Actor:    actor,
			ClientIP: c.ClientIP(),
		})
		if err != nil {
			resp.Failed++
			if len(resp.Errors) < 10 {
				resp.Errors = append(resp.Errors, fmt.Sprintf("%s %s: %v", r.Name, r.Type, err))
			}
			continue
		}
		resp.Created++
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateRecord godoc
// @Summary Edit a record
// @Description Applies changes to a record. No-op edits are detected and skipped. A serial_snapshot enables concurrent-edit detection under the configured conflict policy.
// @Tags records
// @Accept json
// @Produce json
// @Param id path int true "Zone ID"
// @Param rid path int true "Record ID"
// @Param record body models.RecordRequest true "New record values"
// @Success 200 {object} models.MutationResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /zones/{id}/records/{rid} [put]
func (h *Handler) UpdateRecord(c *gin.Context) {
	if _, ok := pathID(c, "id"); !ok {
		return
	}
	rid, ok := pathID(c, "rid")
	if !ok {
		return
	}
	var req models.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	res, err := h.records.Edit(c.Request.Context(), records.EditInput{
		RecordID:       rid,
		Name:           req.Name,
		Type:           req.Type,
		Content:        req.Content,
		TTL:            req.TTL,
		Prio:           req.Prio,
		Disabled:       req.Disabled,
		SerialSnapshot: req.SerialSnapshot,
		Actor:          middleware.Actor(c),
		ClientIP:       c.ClientIP(),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MutationResponse{
		Record:  recordResponse(res.Record),
		NoOp:    res.NoOp,
		Warning: res.Warning,
	})
}

// DeleteRecord godoc
// @Summary Delete a record
// @Description Deletes a record. With ?delete_ptr=1 an A/AAAA deletion also removes the PTR still pointing at it; with ?delete_forward=1 a PTR deletion removes its forward record. Missing counterparts are a no-op.
// @Tags records
// @Produce json
// @Param id path int true "Zone ID"
// @Param rid path int true "Record ID"
// @Param delete_ptr query bool false "Also delete the paired PTR record"
// @Param delete_forward query bool false "Also delete the paired forward record"
// @Success 200 {object} models.MutationResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /zones/{id}/records/{rid} [delete]
func (h *Handler) DeleteRecord(c *gin.Context) {
	if _, ok := pathID(c, "id"); !ok {
		return
	}
	rid, ok := pathID(c, "rid")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	actor := middleware.Actor(c)
	deleted, warning, err := h.records.Delete(ctx, rid, actor, c.ClientIP())
	if err != nil {
		writeError(c, err)
		return
	}

	if flagParam(c, "delete_ptr") && (deleted.Type == validation.TypeA || deleted.Type == validation.TypeAAAA) {
		out, err := h.reverse.Delete(ctx, deleted.Content, deleted.Name, actor, c.ClientIP())
		switch {
		case err != nil:
			warning = joinWarnings(warning, "PTR cleanup failed: "+err.Error())
		case out.Record == nil && out.Message != "":
			warning = joinWarnings(warning, out.Message)
		default:
			warning = joinWarnings(warning, out.Warning)
		}
	}
	if flagParam(c, "delete_forward") && deleted.Type == validation.TypePTR {
		out, err := h.reverse.DeleteForward(ctx, deleted.Name, deleted.Content, actor, c.ClientIP())
		switch {
		case err != nil:
			warning = joinWarnings(warning, "forward cleanup failed: "+err.Error())
		case out.Record == nil && out.Message != "":
			warning = joinWarnings(warning, out.Message)
		default:
			warning = joinWarnings(warning, out.Warning)
		}
	}

	c.JSON(http.StatusOK, models.MutationResponse{
		Record:  recordResponse(deleted),
		Warning: warning,
	})
}

// commentIfEnabled drops comment text when the feature is disabled.
func (h *Handler) commentIfEnabled(comment string) string {
	if !h.cfg.Interface.ShowRecordComments {
		return ""
	}
	return comment
}

func joinWarnings(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "; " + b
	}
}
