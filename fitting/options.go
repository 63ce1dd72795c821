package fitting

// FitOptions 配置一次拟合运行所需的依赖与预算。
type FitOptions struct {
	// Engine 提供字体解析与词宽度量，由渲染后端实现。
	Engine FontEngine

	// MinWidth 是工作图的最小宽度（像素），源图不足时会先放大，
	// 以降低低分辨率下词宽取整带来的误差。默认 2000。
	MinWidth int

	// MaxIterations 限制搜索外层循环的轮数（含上限扩张阶段）。默认 64。
	MaxIterations int

	// MaxFontSize 是字号的绝对上限，约束上限扩张阶段的无界增长。
	// 默认为工作图宽度。
	MaxFontSize float64

	Debug DebugOptions
}

// DebugOptions 控制调试输出。调试行为通过显式配置传入，
// 核心内部不读取任何环境变量。
type DebugOptions struct {
	LogSearch bool // 输出搜索轨迹与词宽缓存命中情况
	Overlay   bool // 渲染时叠加区间端点与词锚点标记
}

const (
	defaultMinWidth      = 2000
	defaultMaxIterations = 64
)

func (o FitOptions) withDefaults(workingWidth int) FitOptions {
	if o.MaxIterations <= 0 {
		o.MaxIterations = defaultMaxIterations
	}
	if o.MaxFontSize <= 0 {
		o.MaxFontSize = float64(workingWidth)
	}
	return o
}
