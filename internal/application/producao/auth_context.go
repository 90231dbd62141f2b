package producao

import "github.com/mcarvalho/Producao-api/internal/domain"

// AuthContext identifica quem executa a operação. É sempre passado explicitamente
// a cada chamada de caso de uso — o núcleo nunca lê sessão de estado global.
type AuthContext struct {
	CompanyID string
	UserID    string
}

// Validate garante que o contexto está completo antes de qualquer mutação.
func (a AuthContext) Validate() error {
	if a.CompanyID == "" {
		return domain.NewValidationError("company_id", "obrigatório")
	}
	if a.UserID == "" {
		return domain.NewValidationError("user_id", "obrigatório")
	}
	return nil
}
