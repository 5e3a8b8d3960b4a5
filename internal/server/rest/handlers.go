package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/recrutement/internal/common"
	"github.com/dmitrijs2005/recrutement/internal/server/auth"
	"github.com/dmitrijs2005/recrutement/internal/server/models"
	"github.com/dmitrijs2005/recrutement/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type registerResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

type loginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	Role    models.Role `json:"role"`
}

type candidatureResponse struct {
	Message     string              `json:"message"`
	Candidature *models.Candidature `json:"candidature"`
}

type documentResponse struct {
	Key string `json:"key,omitempty"`
	URL string `json:"url"`
}

type messageResponse struct {
	Message string          `json:"message"`
	Msg     *models.Message `json:"msg"`
}

type timeResponse struct {
	Time time.Time `json:"time"`
}

// principal returns the caller set by RequireAuth.
func principal(r *http.Request) *auth.Principal {
	p, _ := PrincipalFromContext(r.Context())
	return p
}

// pathUserID returns the named URL parameter if it is a UUID.
func pathUserID(r *http.Request, name, notFound string) (string, error) {
	id := chi.URLParam(r, name)
	if _, err := uuid.Parse(id); err != nil {
		return "", common.NewPublicError(common.ErrorNotFound, notFound)
	}
	return id, nil
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	u, err := s.Users.Register(r.Context(), services.RegisterInput{
		Nom:       req.Nom,
		Postnom:   req.Postnom,
		Prenom:    req.Prenom,
		Email:     req.Email,
		Password:  req.Password,
		Telephone: req.Telephone,
		Adresse:   req.Adresse,
		Role:      models.Role(req.Role),
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, registerResponse{Message: "Inscription réussie", User: u})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	res, err := s.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, loginResponse{Message: "Connexion réussie", Token: res.Token, Role: res.Role})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.Users.Logout(r.Context(), principal(r)); err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Déconnexion réussie"})
}

func (s *Server) submitCandidature(w http.ResponseWriter, r *http.Request) {
	var req candidatureRequest
	if err := decodeAndValidate(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	c, err := s.Candidatures.Submit(r.Context(), principal(r).UserID, req.PaiementOnline, req.PaiementCash)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, candidatureResponse{Message: "Candidature envoyée", Candidature: c})
}

func (s *Server) getCandidature(w http.ResponseWriter, r *http.Request) {
	c, err := s.Candidatures.Get(r.Context(), principal(r).UserID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, c)
}

func (s *Server) requestDocumentUpload(w http.ResponseWriter, r *http.Request) {
	key, url, err := s.Documents.RequestUpload(r.Context(), principal(r).UserID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, documentResponse{Key: key, URL: url})
}

func (s *Server) requestDocumentDownload(w http.ResponseWriter, r *http.Request) {
	url, err := s.Documents.RequestDownload(r.Context(), principal(r).UserID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, documentResponse{URL: url})
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := decodeAndValidate(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	m, err := s.Messages.Send(r.Context(), principal(r).UserID, req.ReceiverID, req.Message)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, messageResponse{Message: "Message envoyé", Msg: m})
}

func (s *Server) listConversation(w http.ResponseWriter, r *http.Request) {
	other, err := pathUserID(r, "withUserId", "user not found")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	msgs, err := s.Messages.Conversation(r.Context(), principal(r).UserID, other)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, msgs)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.Users.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, users)
}

func (s *Server) setUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathUserID(r, "id", "user not found")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var req roleRequest
	if err := decodeAndValidate(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	u, err := s.Users.SetRole(r.Context(), id, models.Role(req.Role))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, u)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUserID(r, "id", "user not found")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.Users.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Utilisateur supprimé"})
}

func (s *Server) dbTime(w http.ResponseWriter, r *http.Request) {
	t, err := s.System.DatabaseTime(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, timeResponse{Time: t})
}
