package handler

import (
	"errors"
	"net/http"

	"github.com/embermatch/api/internal/bank"
	"github.com/embermatch/api/internal/model"
)

// AdminHandler handles administrative endpoints
type AdminHandler struct {
	catalog  *bank.Catalog
	bankPath string
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(catalog *bank.Catalog, bankPath string) *AdminHandler {
	return &AdminHandler{catalog: catalog, bankPath: bankPath}
}

// reloadResult reports a successful bank reload.
type reloadResult struct {
	Questions  int                            `json:"questions"`
	ByCategory map[model.QuestionCategory]int `json:"by_category"`
}

// ReloadBank handles POST /v1/admin/questions/reload - reread the bank
// file and atomically swap the active question bank. A rejected file
// leaves the active bank untouched.
func (h *AdminHandler) ReloadBank(w http.ResponseWriter, r *http.Request) {
	defs, err := bank.ReadDefinitions(h.bankPath)
	if err != nil {
		WriteError(w, model.NewInternalError("reading question bank file"))
		return
	}

	if err := h.catalog.Reload(defs); err != nil {
		var loadErr *bank.LoadError
		if errors.As(err, &loadErr) {
			fields := make([]model.FieldError, 0, len(loadErr.Issues))
			for _, issue := range loadErr.Issues {
				field := issue.QuestionID
				if field == "" {
					field = "questions"
				}
				fields = append(fields, model.FieldError{Field: field, Message: issue.Message})
			}
			WriteError(w, model.NewValidationProblem(fields))
			return
		}
		WriteError(w, model.NewInternalError("reloading question bank"))
		return
	}

	b := h.catalog.Current()
	WriteData(w, http.StatusOK, reloadResult{
		Questions:  b.Len(),
		ByCategory: b.CountByCategory(),
	}, nil)
}
