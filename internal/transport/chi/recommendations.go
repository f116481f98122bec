package chi

import (
	"io"
	"net/http"
	"strings"

	"github.com/kailas-cloud/jobmatch/internal/domain"
	recommenduc "github.com/kailas-cloud/jobmatch/internal/usecase/recommend"
)

// multipartOverhead leaves room for form boundaries and headers around the file.
const multipartOverhead = 1 << 20

// GetRecommendations handles GET /recommendations: ranks the catalog against the
// keywords of the user's active CV.
func (s *Server) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	params, err := bindRecommend(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	out, err := s.svc.Recommend.FromActiveCV(r.Context(), UserFromContext(r.Context()))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendationsToAPI(out, params.Token))
}

// PostRecommendations handles POST /recommendations with caller-supplied keywords.
func (s *Server) PostRecommendations(w http.ResponseWriter, r *http.Request) {
	params, err := bindRecommend(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	var req RecommendRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	source := recommenduc.SourceFreshAnalysis
	if req.Source != "" {
		source = recommenduc.Source(req.Source)
	}
	if !source.IsValid() {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed,
			"source must be one of: active-cv-keywords, fresh-analysis")
		return
	}

	out, err := s.svc.Recommend.Recommend(r.Context(), recommenduc.Request{Source: source, Keywords: req.Keywords})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendationsToAPI(out, params.Token))
}

// AnalyzeCV handles POST /cv/analyze: a multipart upload in field "file".
// The extracted keywords become the user's active CV keywords.
func (s *Server) AnalyzeCV(w http.ResponseWriter, r *http.Request) {
	params, err := bindRecommend(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxCVSize+multipartOverhead)
	file, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "multipart field \"file\" is required: "+err.Error())
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, domain.MaxCVSize+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "read upload: "+err.Error())
		return
	}

	cv := domain.CV{
		Filename:    hdr.Filename,
		ContentType: strings.TrimSpace(hdr.Header.Get("Content-Type")),
		Data:        data,
	}
	out, err := s.svc.Recommend.FromUpload(r.Context(), UserFromContext(r.Context()), cv)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendationsToAPI(out, params.Token))
}
