package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	xdraw "golang.org/x/image/draw"

	"github.com/ByLCY/textfill/fitting"
	"github.com/ByLCY/textfill/fonts"
	canvasrenderer "github.com/ByLCY/textfill/renderer/canvas"
	"github.com/ByLCY/textfill/server"
)

func main() {
	imagePath := flag.String("image", "", "一次性模式：输入图片路径（留空则启动 HTTP 服务）")
	fontPath := flag.String("font", "", "一次性模式：字体文件路径（留空使用内置 Go 字体）")
	text := flag.String("text", "", "一次性模式：要填充的文本")
	colorHex := flag.String("color", "#000000", "文本颜色（十六进制，RGB 或 RGBA）")
	output := flag.String("out", "output/fit.png", "一次性模式：输出 PNG 路径")
	debugJSON := flag.String("debug-json", "", "拟合结果调试 JSON 输出路径")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用环境变量")
	}
	cfg := server.LoadConfig()

	if *imagePath != "" {
		if err := runOnce(cfg, *imagePath, *fontPath, *text, *colorHex, *output, *debugJSON); err != nil {
			log.Fatalf("生成图片失败: %v", err)
		}
		fmt.Printf("已生成图片：%s\n", *output)
		return
	}

	srv := server.New(cfg)
	log.Printf("textfill 服务监听 :%s", cfg.Port)
	if err := srv.Run(); err != nil {
		log.Fatalf("服务退出: %v", err)
	}
}

// runOnce 串联解码、拟合与渲染，把结果缩回源图尺寸后写盘。
func runOnce(cfg *server.Config, imagePath, fontPath, text, colorHex, output, debugJSON string) error {
	file, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("无法打开图片 %s: %w", imagePath, err)
	}
	src, _, err := image.Decode(file)
	file.Close()
	if err != nil {
		return fmt.Errorf("解码图片 %s 失败: %w", imagePath, err)
	}

	fontData := fonts.Default()
	if fontPath != "" {
		fontData, err = os.ReadFile(fontPath)
		if err != nil {
			return fmt.Errorf("读取字体 %s 失败: %w", fontPath, err)
		}
	}

	textColor, err := server.ParseHexColor(colorHex)
	if err != nil {
		return err
	}

	rend := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Overlay: cfg.Debug})
	result, err := fitting.Fit(src, text, fontData, fitting.FitOptions{
		Engine:        rend,
		MaxIterations: cfg.FitMaxIterations,
		MaxFontSize:   cfg.FitMaxFontSize,
		Debug: fitting.DebugOptions{
			LogSearch: cfg.Debug,
			Overlay:   cfg.Debug,
		},
	})
	if err != nil {
		return fmt.Errorf("拟合失败: %w", err)
	}
	if !result.Fitted {
		log.Printf("警告：未达成精确拟合（%d/%d 个词已放置），输出为尽力布局",
			result.PlacedWords, result.TotalWords)
	}

	if debugJSON != "" {
		if err := os.MkdirAll(filepath.Dir(debugJSON), 0o755); err != nil {
			return fmt.Errorf("创建调试目录失败: %w", err)
		}
		if err := fitting.WriteDebugJSON(result, debugJSON); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}

	out, err := rend.Render(result, textColor)
	if err != nil {
		return fmt.Errorf("渲染失败: %w", err)
	}

	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), out, out.Bounds(), xdraw.Src, nil)

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	outFile, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	defer outFile.Close()
	if err := png.Encode(outFile, dst); err != nil {
		return fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return nil
}
