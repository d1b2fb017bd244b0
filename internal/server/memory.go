package server

import (
	"io/fs"
	"math"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"golang.org/x/sys/unix"
)

type diskInfo struct {
	TotalGB float64 `json:"total_gb"`
	UsedGB  float64 `json:"used_gb"`
	FreeGB  float64 `json:"free_gb"`
}

type memoryResponse struct {
	Disk             diskInfo `json:"disk"`
	FilesInWorkspace []string `json:"files_in_workspace"`
}

// registerMemory exposes a small operational endpoint: disk usage plus
// everything currently sitting in the workspace.
func registerMemory(e *echo.Echo, workspaceDir string) {
	e.GET("/memory", func(c echo.Context) error {
		var st unix.Statfs_t
		if err := unix.Statfs("/", &st); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		total := st.Blocks * uint64(st.Bsize)
		free := st.Bavail * uint64(st.Bsize)

		files := []string{}
		root, err := filepath.Abs(workspaceDir)
		if err == nil {
			_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return nil
				}
				if !d.IsDir() {
					files = append(files, path)
				}
				return nil
			})
		}

		return c.JSON(http.StatusOK, memoryResponse{
			Disk: diskInfo{
				TotalGB: roundGB(total),
				UsedGB:  roundGB(total - free),
				FreeGB:  roundGB(free),
			},
			FilesInWorkspace: files,
		})
	})
}

func roundGB(bytes uint64) float64 {
	gb := float64(bytes) / (1 << 30)
	return math.Round(gb*100) / 100
}
