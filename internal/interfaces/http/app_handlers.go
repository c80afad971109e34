package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/bill-review/internal/application/port"
	"github.com/garyjia/bill-review/internal/application/service"
	"github.com/garyjia/bill-review/internal/domain/bill"
	"github.com/garyjia/bill-review/internal/domain/entity"
	"github.com/garyjia/bill-review/internal/export"
	"github.com/garyjia/bill-review/pkg/utils"
)

// appHandlers serves the employee and admin API
type appHandlers struct {
	deps           Dependencies
	maxUploadBytes int64
	logger         Logger
}

type proofResponse struct {
	File   fileInputView          `json:"file"`
	Upload *service.PendingUpload `json:"upload"`
}

type submitRequest struct {
	Form   bill.FormFields        `json:"form"`
	Upload *service.PendingUpload `json:"upload"`
}

type navigationResponse struct {
	Bill     *entity.Bill `json:"bill,omitempty"`
	Navigate string       `json:"navigate"`
}

type reviewRequest struct {
	Comment string `json:"comment"`
}

type decideRequest struct {
	IDs      []string         `json:"ids" binding:"required,min=1"`
	Decision service.Decision `json:"decision" binding:"required,oneof=accept refuse"`
	Comment  string           `json:"comment"`
}

type decisionResponse struct {
	BillID string `json:"billId"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type columnResponse struct {
	port.Column
	Open  bool          `json:"open"`
	Bills []entity.Bill `json:"bills"`
}

type dashboardResponse struct {
	Columns  []columnResponse `json:"columns"`
	Expanded *entity.Bill     `json:"expanded,omitempty"`
}

// UploadProof handles POST /api/employee/proofs.
// A failed upload still answers with the file state so the form can be submitted without proof.
func (h *appHandlers) UploadProof(c *gin.Context) {
	file, err := readProof(c, "file", h.maxUploadBytes)
	if err != nil {
		respondError(c, http.StatusBadRequest, err, nil)
		return
	}

	view := &fileInputView{}
	pending, err := h.deps.Submission.SelectFile(c.Request.Context(), currentSession(c), file, view)
	if err != nil {
		respondError(c, statusFor(err), err, proofResponse{File: *view})
		return
	}

	respondOK(c, proofResponse{File: *view, Upload: pending})
}

// SubmitBill handles POST /api/employee/bills
func (h *appHandlers) SubmitBill(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Errorf("invalid bill form: %w", err), nil)
		return
	}

	nav := &routeRecorder{}
	submitted := h.deps.Submission.Submit(c.Request.Context(), currentSession(c), req.Form, req.Upload, nav.navigate)

	respondOK(c, navigationResponse{Bill: &submitted, Navigate: nav.route})
}

// ListBills handles GET /api/employee/bills
func (h *appHandlers) ListBills(c *gin.Context) {
	view := &listView{}
	if err := h.deps.Listing.Show(c.Request.Context(), view); err != nil {
		respondError(c, statusFor(err), errors.New(view.message), nil)
		return
	}

	respondOK(c, view.rows)
}

// Dashboard handles GET /api/admin/dashboard.
// Query parameters "open" (comma separated statuses) and "expanded" (bill id) restore the board state.
func (h *appHandlers) Dashboard(c *gin.Context) {
	view := &dashboardView{}
	groups, err := h.deps.Review.Dashboard(c.Request.Context(), view)
	if err != nil {
		respondError(c, statusFor(err), errors.New(view.message), nil)
		return
	}

	board := service.NewReviewBoard()
	for _, status := range strings.Split(c.Query("open"), ",") {
		if s := entity.Status(strings.TrimSpace(status)); s.IsKnown() && !board.IsColumnOpen(s) {
			board.ToggleColumn(s)
		}
	}

	resp := dashboardResponse{Columns: make([]columnResponse, 0, len(view.columns))}
	expandedID := c.Query("expanded")
	for _, column := range view.columns {
		status := entity.Status(column.Status)
		bills := groups.Get(status)
		for i := range bills {
			if bills[i].ID == expandedID {
				board.Expand(bills[i])
				resp.Expanded = &bills[i]
			}
		}
		resp.Columns = append(resp.Columns, columnResponse{
			Column: column,
			Open:   board.IsColumnOpen(status),
			Bills:  bills,
		})
	}

	respondOK(c, resp)
}

// Accept handles POST /api/admin/bills/:id/accept
func (h *appHandlers) Accept(c *gin.Context) {
	h.review(c, service.DecisionAccept)
}

// Refuse handles POST /api/admin/bills/:id/refuse
func (h *appHandlers) Refuse(c *gin.Context) {
	h.review(c, service.DecisionRefuse)
}

func (h *appHandlers) review(c *gin.Context, decision service.Decision) {
	var req reviewRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, fmt.Errorf("invalid review request: %w", err), nil)
			return
		}
	}

	ctx := c.Request.Context()
	found, err := h.deps.Review.FindBill(ctx, c.Param("id"))
	if err != nil {
		respondError(c, statusFor(err), err, nil)
		return
	}

	nav := &routeRecorder{}
	decide := h.deps.Review.Accept
	if decision == service.DecisionRefuse {
		decide = h.deps.Review.Refuse
	}

	updated, err := decide(ctx, currentSession(c), *found, utils.SanitizeString(req.Comment), nav.navigate)
	if err != nil {
		respondError(c, statusFor(err), err, navigationResponse{Navigate: nav.route})
		return
	}

	respondOK(c, navigationResponse{Bill: &updated, Navigate: nav.route})
}

// DecideMany handles POST /api/admin/bills/decide
func (h *appHandlers) DecideMany(c *gin.Context) {
	var req decideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Errorf("invalid decision request: %w", err), nil)
		return
	}

	ctx := c.Request.Context()
	bills, err := h.deps.Listing.LoadBills(ctx)
	if err != nil {
		respondError(c, statusFor(err), err, nil)
		return
	}
	byID := make(map[string]entity.Bill, len(bills))
	for _, b := range bills {
		byID[b.ID] = b
	}

	responses := make([]decisionResponse, len(req.IDs))
	selected := make([]entity.Bill, 0, len(req.IDs))
	positions := make([]int, 0, len(req.IDs))
	for i, id := range req.IDs {
		b, ok := byID[id]
		if !ok {
			responses[i] = decisionResponse{BillID: id, Error: port.ErrNotFound.Error()}
			continue
		}
		selected = append(selected, b)
		positions = append(positions, i)
	}

	results := h.deps.Review.DecideMany(ctx, currentSession(c), selected, req.Decision, utils.SanitizeString(req.Comment))
	for j, result := range results {
		resp := decisionResponse{BillID: result.BillID, Status: result.Bill.Status.String()}
		if result.Err != nil {
			resp.Error = result.Err.Error()
		}
		responses[positions[j]] = resp
	}

	respondOK(c, responses)
}

// History handles GET /api/admin/bills/:id/history
func (h *appHandlers) History(c *gin.Context) {
	entries, err := h.deps.History.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, statusFor(err), err, nil)
		return
	}
	respondOK(c, entries)
}

// ExportQueue handles GET /api/admin/bills/export
func (h *appHandlers) ExportQueue(c *gin.Context) {
	bills, err := h.deps.Listing.LoadBills(c.Request.Context())
	if err != nil {
		respondError(c, statusFor(err), err, nil)
		return
	}

	var buf bytes.Buffer
	if err := h.deps.Exporter.Write(&buf, h.deps.Review.GroupForDisplay(bills)); err != nil {
		h.logger.Error("Failed to export review queue", "error", err)
		respondError(c, http.StatusInternalServerError, err, nil)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="notes-de-frais.xlsx"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// readProof reads a multipart file field; the declared type comes from the part header
func readProof(c *gin.Context, field string, maxBytes int64) (entity.ProofFile, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

	header, err := c.FormFile(field)
	if err != nil {
		return entity.ProofFile{}, fmt.Errorf("missing %s field: %w", field, err)
	}
	content, err := readPart(header)
	if err != nil {
		return entity.ProofFile{}, err
	}

	return entity.ProofFile{
		Name:    header.Filename,
		Type:    header.Header.Get("Content-Type"),
		Content: content,
	}, nil
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	return content, nil
}
