// Package server 对外提供 fit-text HTTP 服务：按 URL 抓取图片与字体，
// 调用拟合核心生成文字图，落盘为 PNG 并按文件名提供下载。
package server

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	xdraw "golang.org/x/image/draw"

	"github.com/ByLCY/textfill/fitting"
	canvasrenderer "github.com/ByLCY/textfill/renderer/canvas"
)

// Server 持有服务配置与渲染后端。
// 每个请求的拟合运行各自拥有独立的词流与词宽缓存，互不共享。
type Server struct {
	cfg    *Config
	client *http.Client
	rend   *canvasrenderer.Renderer
	start  time.Time // 高精度计数器基准，用于输出文件命名
}

// New 创建服务实例。
func New(cfg *Config) *Server {
	return &Server{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.FetchTimeoutSeconds) * time.Second,
		},
		rend:  canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Overlay: cfg.Debug}),
		start: time.Now(),
	}
}

// Router 组装路由。
func (s *Server) Router() *gin.Engine {
	if !s.cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.POST("/fit-text", s.handleFitText)
	r.GET("/fit-text", s.handleGetOutput)
	return r
}

// Run 创建输出目录并启动监听。
func (s *Server) Run() error {
	if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	return s.Router().Run(":" + s.cfg.Port)
}

type fitTextRequest struct {
	URLImage string  `json:"urlImage" binding:"required"`
	URLFont  string  `json:"urlFont" binding:"required"`
	Text     string  `json:"text" binding:"required"`
	Color    string  `json:"color"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

func (s *Server) handleFitText(c *gin.Context) {
	var req fitTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体无效", "details": err.Error()})
		return
	}

	maxBytes := int64(s.cfg.MaxFetchMB) << 20
	imgData, err := fetchBytes(s.client, req.URLImage, maxBytes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "抓取图片失败", "details": err.Error()})
		return
	}
	fontData, err := fetchBytes(s.client, req.URLFont, maxBytes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "抓取字体失败", "details": err.Error()})
		return
	}

	src, _, err := image.Decode(bytes.NewReader(imgData))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "解码图片失败", "details": err.Error()})
		return
	}
	textColor, err := ParseHexColor(req.Color)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "颜色格式无效", "details": err.Error()})
		return
	}

	result, err := fitting.Fit(src, req.Text, fontData, fitting.FitOptions{
		Engine:        s.rend,
		MaxIterations: s.cfg.FitMaxIterations,
		MaxFontSize:   s.cfg.FitMaxFontSize,
		Debug: fitting.DebugOptions{
			LogSearch: s.cfg.Debug,
			Overlay:   s.cfg.Debug,
		},
	})
	switch {
	case err == nil:
	case errors.Is(err, fitting.ErrSearchBudget):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "布局搜索超出预算", "details": err.Error()})
		return
	case errors.Is(err, fitting.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "输入无效", "details": err.Error()})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "拟合失败", "details": err.Error()})
		return
	}

	out, err := s.rend.Render(result, textColor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "渲染失败", "details": err.Error()})
		return
	}

	// 未指定输出尺寸时缩回源图尺寸
	targetW, targetH := src.Bounds().Dx(), src.Bounds().Dy()
	if req.Width > 0 && req.Height > 0 {
		targetW, targetH = int(req.Width), int(req.Height)
	}
	resized := resizeImage(out, targetW, targetH)

	name := s.outputName()
	path := filepath.Join(s.cfg.OutputDir, name)
	if err := savePNG(path, resized); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存输出失败", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"imageSrc": s.publicURL(c, name),
		"fitted":   result.Fitted,
	})
}

// handleGetOutput 按文件名返回已生成的图片。
// 文件不存在时返回空的 200 文本响应，前端据此轮询生成进度。
func (s *Server) handleGetOutput(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 name 参数"})
		return
	}
	path := filepath.Join(s.cfg.OutputDir, filepath.Base(name))
	if _, err := os.Stat(path); err != nil {
		c.String(http.StatusOK, "")
		return
	}
	c.File(path)
}

// outputName 生成持久化文件名：秒级时间戳加服务启动以来的纳秒计数，
// 避免并发请求间的文件名冲突。
func (s *Server) outputName() string {
	return fmt.Sprintf("%d-%d.png", time.Now().Unix(), time.Since(s.start).Nanoseconds())
}

func (s *Server) publicURL(c *gin.Context, name string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/fit-text?name=%s", scheme, c.Request.Host, name)
}

// ParseHexColor 解析十六进制颜色串。前导 # 可省略；
// 不足 8 位时右侧补 f，即省略 alpha 的 RGB 默认完全不透明。
func ParseHexColor(s string) (color.Color, error) {
	hexStr := strings.TrimPrefix(strings.TrimSpace(s), "#")
	for len(hexStr) < 8 {
		hexStr += "f"
	}
	if len(hexStr) > 8 {
		return nil, fmt.Errorf("颜色 %q 超过 8 位十六进制", s)
	}
	var parts [4]uint8
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseUint(hexStr[i*2:i*2+2], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("颜色 %q 不是合法的十六进制: %w", s, err)
		}
		parts[i] = uint8(v)
	}
	return color.NRGBA{R: parts[0], G: parts[1], B: parts[2], A: parts[3]}, nil
}

// resizeImage 用 Catmull-Rom 采样把图像缩放到目标尺寸。
func resizeImage(src image.Image, width, height int) image.Image {
	if width <= 0 || height <= 0 {
		return src
	}
	b := src.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return src
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

func savePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}
