package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/evcraddock/wander/internal/inquiry"
	"github.com/evcraddock/wander/internal/metrics"
)

const contactSuccess = "Your message has been sent successfully!"

type contactData struct {
	Form    inquiry.Form
	Budgets []string
	Errors  inquiry.ValidationErrors
	Success string
	Error   string
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "contact.html", contactData{Budgets: inquiry.Budgets})
}

// handleContactPost validates and stores an inquiry, then notifies the
// agency mailbox when email is configured.
func (s *Server) handleContactPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := inquiry.Form{
		Name:          r.PostFormValue("name"),
		ContactNumber: r.PostFormValue("contactNumber"),
		Email:         r.PostFormValue("email"),
		Budget:        r.PostFormValue("budget"),
		Message:       r.PostFormValue("message"),
	}
	data := contactData{Form: form, Budgets: inquiry.Budgets}

	inq, err := s.inquiries.Create(ctx, form)
	if err != nil {
		var verrs inquiry.ValidationErrors
		if errors.As(err, &verrs) {
			s.metrics.Inquiries.WithLabelValues(metrics.ResultRejected).Inc()
			data.Errors = verrs
			s.render(w, http.StatusUnprocessableEntity, "contact.html", data)
			return
		}
		s.metrics.Inquiries.WithLabelValues(metrics.ResultError).Inc()
		slog.ErrorContext(ctx, "saving inquiry", "error", err)
		data.Error = "Failed to send message. Please try again."
		s.render(w, http.StatusInternalServerError, "contact.html", data)
		return
	}

	s.metrics.Inquiries.WithLabelValues(metrics.ResultOK).Inc()
	slog.InfoContext(ctx, "inquiry received", "id", inq.ID, "budget", inq.Budget)
	if err := s.notifier.Inquiry(ctx, inq); err != nil {
		slog.ErrorContext(ctx, "sending inquiry notification", "id", inq.ID, "error", err)
	}

	s.render(w, http.StatusOK, "contact.html", contactData{
		Budgets: inquiry.Budgets,
		Success: contactSuccess,
	})
}
