package loaders

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// SceneFileExt is the extension of scene description files
const SceneFileExt = ".test"

// SceneInfo represents a discovered scene file with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // File name without extension
	Name        string `json:"name"`        // From "# Scene:" or the file name
	Description string `json:"description"` // From "# Description:"
	FilePath    string `json:"filePath"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Objects     int    `json:"objects"`
	Lights      int    `json:"lights"`
	Animated    bool   `json:"animated"` // Uses sphereBounce or triSide records
}

// ListSceneFiles scans dir for scene files and returns their metadata sorted
// by name. Files that fail to parse are skipped with a warning in the result.
func ListSceneFiles(dir string) ([]SceneInfo, []error) {
	files, err := filepath.Glob(filepath.Join(dir, "*"+SceneFileExt))
	if err != nil {
		return nil, []error{fmt.Errorf("failed to scan scenes directory: %w", err)}
	}

	var scenes []SceneInfo
	var warnings []error
	for _, filePath := range files {
		info, err := ReadSceneInfo(filePath)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("skipping %s: %w", filePath, err))
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, warnings
}

// ReadSceneInfo loads a scene file, builds frame 0 and reads its header comments
func ReadSceneInfo(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:       nameWithoutExt,
		Name:     titleCase(nameWithoutExt),
		FilePath: filePath,
	}

	sf, err := LoadSceneFile(filePath)
	if err != nil {
		return info, err
	}
	s, err := sf.Build(0, nil)
	if err != nil {
		return info, err
	}
	info.Width, info.Height = s.Camera.Width, s.Camera.Height
	info.Objects = len(s.Objects)
	info.Lights = len(s.Lights)
	for _, tok := range sf.Tokens {
		if tok == KeywordSphereBounce || strings.HasPrefix(tok, KeywordTriSide) {
			info.Animated = true
			break
		}
	}

	if err := readHeaderComments(filePath, &info); err != nil {
		return info, err
	}
	return info, nil
}

// readHeaderComments fills metadata from the leading "# Key: value" lines
func readHeaderComments(filePath string, info *SceneInfo) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if value, ok := strings.CutPrefix(content, "Scene:"); ok {
			info.Name = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(content, "Description:"); ok {
			info.Description = strings.TrimSpace(value)
		}
	}
	return scanner.Err()
}

// titleCase turns "bouncing-pyramid" into "Bouncing Pyramid"
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
