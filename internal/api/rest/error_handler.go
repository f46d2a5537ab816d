package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	domainerrors "github.com/juristack/lawoffice-backend/internal/domain/errors"
	"github.com/juristack/lawoffice-backend/internal/domain/validation"
)

// fieldError is one field-level rejection in a problem response.
type fieldError struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// problemResponse is the JSON body of every error response.
type problemResponse struct {
	Error  string       `json:"error"`
	Code   string       `json:"code,omitempty"`
	Fields []fieldError `json:"fields,omitempty"`
}

// ptBRMessages maps rejection kinds to the messages office staff sees. The
// machine-readable kind rides alongside for API clients.
var ptBRMessages = map[validation.Kind]string{
	validation.KindWrongLength:                "número de dígitos incorreto",
	validation.KindInvalidCheckDigit:          "dígito verificador inválido",
	validation.KindTrivialSequence:            "sequência de dígitos repetidos não é válida",
	validation.KindTooShort:                   "valor muito curto",
	validation.KindTooLong:                    "valor muito longo",
	validation.KindInvalidLength:              "comprimento inválido",
	validation.KindMalformed:                  "valor mal formado",
	validation.KindRequired:                   "campo obrigatório",
	validation.KindMissingRequiredAssociation: "vínculo com processo ou cliente é obrigatório",
	validation.KindInconsistentLink:           "o processo informado pertence a outro cliente",
	validation.KindDateOutOfOrder:             "a data final deve ser posterior à inicial",
	validation.KindDateInPast:                 "a data não pode estar no passado",
	validation.KindDateInFuture:               "a data não pode estar no futuro",
	validation.KindAmountTooLow:               "valor abaixo do mínimo permitido",
	validation.KindAmountTooHigh:              "valor acima do máximo permitido",
	validation.KindFileTooLarge:               "arquivo excede o tamanho máximo",
	validation.KindUnsupportedFileType:        "tipo de arquivo não suportado",
	validation.KindDuplicateValue:             "valor já cadastrado",
}

func localizedMessage(kind validation.Kind, fallback string) string {
	if msg, ok := ptBRMessages[kind]; ok {
		return msg
	}
	return fallback
}

// writeError renders any error as a JSON problem response. Validation
// rejections become 422 with one entry per failing field; AppErrors carry
// their own status; everything else is a 500 with the detail kept out of the
// body.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var fe *validation.FieldErrors
	if errors.As(err, &fe) {
		fields := make([]fieldError, 0, len(fe.All()))
		for _, e := range fe.All() {
			fields = append(fields, fieldError{
				Field:   e.Field,
				Kind:    string(e.Kind),
				Message: localizedMessage(e.Kind, e.Message),
			})
			observeValidationRejection(string(e.Kind))
		}
		writeJSON(w, http.StatusUnprocessableEntity, problemResponse{
			Error:  "dados inválidos",
			Code:   "VALIDATION_ERROR",
			Fields: fields,
		})
		return
	}

	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.StatusCode, problemResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		})
		return
	}

	logger.Error("request failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, problemResponse{
		Error: "erro interno",
		Code:  "INTERNAL_ERROR",
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
