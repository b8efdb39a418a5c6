package api

import (
	"net/http"

	"github.com/QTest-hq/qtest-studio/internal/config"
	"github.com/QTest-hq/qtest-studio/internal/project"
)

// projectTree lists the project so the editor can reload its file tree
func (s *Server) projectTree(w http.ResponseWriter, r *http.Request) {
	root := s.projectRoot(r)

	projCfg, err := config.LoadProjectConfig(root)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tree, err := project.Load(root, projCfg.Tree.Exclude)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, tree)
}
