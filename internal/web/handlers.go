package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/cleared-dev/glclean/internal/logger"
	"github.com/cleared-dev/glclean/internal/pipeline"
	"github.com/cleared-dev/glclean/internal/ratios"
	"github.com/cleared-dev/glclean/internal/runlog"
)

// uploadField is the multipart field carrying the workbook.
const uploadField = "file"

// analysis is the JSON body returned after an upload or a data request.
type analysis struct {
	Status string             `json:"status"`
	Ratios map[int]ratios.Set `json:"ratios"`
	Charts ratios.ChartData   `json:"charts"`
	Years  []int              `json:"years"`
}

// Upload handles POST /upload. It stores the workbook, runs the pipeline
// synchronously and returns ratios and chart data.
func (s *Server) Upload(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	limit := s.cfg.Server.UploadLimit
	if r.ContentLength > limit {
		s.tooLarge(w)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			s.tooLarge(w)
		case errors.Is(err, http.ErrMissingFile):
			WriteError(w, http.StatusBadRequest, "No file part")
		default:
			WriteError(w, http.StatusBadRequest, "Invalid upload")
		}
		return
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	if name == "" || name == "." || name == string(filepath.Separator) {
		WriteError(w, http.StatusBadRequest, "No selected file")
		return
	}
	if !s.registry.Supports(name) {
		WriteError(w, http.StatusBadRequest, "Invalid file type. Please upload an Excel file (.xlsx or .xls)")
		return
	}

	path, err := s.store(file, name)
	if err != nil {
		log.Error().Err(err).Msg("Failed to store upload")
		WriteError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	opts := pipeline.NewOptions(s.cfg, path)
	opts.Registry = s.registry
	res, err := pipeline.Run(r.Context(), opts)
	if err != nil {
		log.Error().Err(err).Str("file", name).Msg("Pipeline failed")
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing file: %v", err))
		return
	}

	if err := runlog.Append(s.cfg.Paths.Output, []runlog.Entry{res.LogEntry(s.now())}); err != nil {
		log.Warn().Err(err).Msg("Failed to write run log")
	}

	WriteJSON(w, http.StatusOK, analysis{
		Status: "success",
		Ratios: res.Ratios,
		Charts: res.Charts,
		Years:  res.Years(),
	})
}

func (s *Server) tooLarge(w http.ResponseWriter) {
	WriteError(w, http.StatusRequestEntityTooLarge,
		fmt.Sprintf("File too large. Maximum size is %dMB.", s.cfg.Server.UploadLimit>>20))
}

// store copies an uploaded workbook into the upload directory under a
// unique name and returns its path.
func (s *Server) store(src io.Reader, name string) (string, error) {
	if err := os.MkdirAll(s.cfg.Paths.Upload, 0o755); err != nil {
		return "", fmt.Errorf("creating upload dir: %w", err)
	}
	path := filepath.Join(s.cfg.Paths.Upload, uuid.NewString()+"-"+name)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}

// FinancialData handles GET /api/financial-data from the last generated
// statements workbook.
func (s *Server) FinancialData(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	s.mu.Lock()
	bs, is, err := pipeline.LoadStatements(s.cfg.Paths.Output, s.cfg.Outputs.Statements)
	s.mu.Unlock()
	if err != nil {
		if errors.Is(err, pipeline.ErrNotGenerated) {
			WriteError(w, http.StatusNotFound, "Financial statements not found. Please upload and process a file first.")
			return
		}
		log.Error().Err(err).Msg("Failed to read statements")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, analysis{
		Status: "success",
		Ratios: ratios.Compute(bs, is),
		Charts: ratios.Charts(bs, is),
		Years:  bs.Years,
	})
}

// Download handles GET /download/{name} for the generated workbooks only.
func (s *Server) Download(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !slices.Contains(s.cfg.Outputs.Names(), name) {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("File %s not found", name))
		return
	}

	path := filepath.Join(s.cfg.Paths.Output, name)
	if _, err := os.Stat(path); err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("File %s not found", name))
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	http.ServeFile(w, r, path)
}

type fileStatus struct {
	Exists bool     `json:"exists"`
	Sheets []string `json:"sheets,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// Files handles GET /api/files, listing which outputs exist and their sheets.
func (s *Server) Files(w http.ResponseWriter, r *http.Request) {
	files := make(map[string]fileStatus)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range s.cfg.Outputs.Names() {
		path := filepath.Join(s.cfg.Paths.Output, name)
		if _, err := os.Stat(path); err != nil {
			files[name] = fileStatus{Exists: false}
			continue
		}
		book, err := s.registry.Open(path)
		if err != nil {
			files[name] = fileStatus{Exists: true, Error: err.Error()}
			continue
		}
		st := fileStatus{Exists: true}
		for _, sh := range book.Sheets {
			st.Sheets = append(st.Sheets, sh.Name)
		}
		files[name] = st
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"files":  files,
		"status": "success",
	})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   s.now().Format(time.RFC3339),
	})
}
