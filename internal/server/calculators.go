package server

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/devnagringa/calculadoras/internal/calculation"
	"github.com/devnagringa/calculadoras/internal/domain"
	"github.com/devnagringa/calculadoras/internal/form"
)

func (s *Server) calculateCLT(w http.ResponseWriter, r *http.Request) {
	f := form.Decode(r.URL.RawQuery)
	writeJSON(w, http.StatusOK, s.engine.CalculateCLT(f.CLTInput()))
}

func (s *Server) calculatePJ(w http.ResponseWriter, r *http.Request) {
	f := form.Decode(r.URL.RawQuery)
	writeJSON(w, http.StatusOK, s.engine.CalculatePJ(f.PJInput()))
}

func (s *Server) compare(w http.ResponseWriter, r *http.Request) {
	f := form.Decode(r.URL.RawQuery)
	writeJSON(w, http.StatusOK, s.engine.Compare(f.CLTInput(), f.PJInput()))
}

func (s *Server) breakEven(w http.ResponseWriter, r *http.Request) {
	f := form.Decode(r.URL.RawQuery)
	res, err := s.engine.BreakEvenRevenue(r.Context(), f.CLTInput(), f.PJInput(), calculation.DefaultBreakEvenOptions())
	if err != nil {
		var be *calculation.BreakEvenError
		if errors.As(err, &be) && be.Cause == nil {
			writeError(w, http.StatusUnprocessableEntity, "não há faturamento PJ que iguale este salário CLT")
			return
		}
		s.log.WithError(err).Warn("break-even search aborted")
		writeError(w, http.StatusServiceUnavailable, "cálculo interrompido")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) investment(w http.ResponseWriter, r *http.Request) {
	var in domain.InvestmentInput
	if err := decodeStrict(r.Body, &in); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido: "+err.Error())
		return
	}
	switch in.PeriodType {
	case "":
		in.PeriodType = domain.PeriodMonths
	case domain.PeriodMonths, domain.PeriodYears:
	default:
		writeError(w, http.StatusBadRequest, `periodType deve ser "anos" ou "meses"`)
		return
	}
	if in.InitialDeposit.IsNegative() || in.MonthlyContribution.IsNegative() || in.Period < 0 {
		writeError(w, http.StatusBadRequest, "valores não podem ser negativos")
		return
	}
	if !in.WithinLimit() {
		writeError(w, http.StatusBadRequest, "período máximo de 100 anos")
		return
	}
	writeJSON(w, http.StatusOK, calculation.CalculateInvestmentResults(in))
}

// cltPreview renders the share image of a CLT calculation. Only gross
// salary, FGTS and dependents are read; the rest of the form is ignored.
func (s *Server) cltPreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	gross, _ := form.ParseDecimal(form.ParseNumberString(q.Get("gs"), "5000"))
	dependents, _ := form.ParseDecimal(form.ParseNumberString(q.Get("dc"), "0"))

	in := domain.CLTInput{
		GrossSalary: gross,
		IncludeFGTS: form.ParseBoolean(q.Get(form.KeyIncludeFGTS), false),
	}
	if gross.IsNegative() {
		in.GrossSalary = decimal.Zero
	}
	if dependents.IsPositive() {
		in.DependentsCount = int(dependents.IntPart())
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if err := s.preview.Render(w, s.engine.CalculateCLT(in)); err != nil {
		s.log.WithError(err).Error("preview render failed")
	}
}
