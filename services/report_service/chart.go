package report_service

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"ecom-insight/inout"

	svg "github.com/ajstarks/svgo"
)

// 趋势图尺寸与留白
const (
	chartWidth   = 900
	chartHeight  = 420
	chartPadding = 60
)

// RenderTrendChart 把月度收入趋势渲染为SVG柱状图
func RenderTrendChart(rows []inout.MonthlyTrendRow) []byte {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(chartWidth, chartHeight)

	// 背景与标题
	canvas.Rect(0, 0, chartWidth, chartHeight, "fill:white")
	canvas.Text(chartWidth/2, 28, "Monthly Revenue Trend",
		"text-anchor:middle;font-size:18px;font-family:sans-serif;fill:#333")

	if len(rows) == 0 {
		canvas.Text(chartWidth/2, chartHeight/2, "no data",
			"text-anchor:middle;font-size:14px;font-family:sans-serif;fill:#999")
		canvas.End()
		return buf.Bytes()
	}

	maxRevenue := 0.0
	for _, row := range rows {
		if row.Revenue > maxRevenue {
			maxRevenue = row.Revenue
		}
	}
	if maxRevenue == 0 {
		maxRevenue = 1
	}

	plotWidth := chartWidth - 2*chartPadding
	plotHeight := chartHeight - 2*chartPadding
	barSpace := plotWidth / len(rows)
	barWidth := barSpace * 3 / 4
	if barWidth < 1 {
		barWidth = 1
	}

	// 坐标轴
	canvas.Line(chartPadding, chartHeight-chartPadding, chartWidth-chartPadding, chartHeight-chartPadding,
		"stroke:#888;stroke-width:1")
	canvas.Line(chartPadding, chartPadding, chartPadding, chartHeight-chartPadding,
		"stroke:#888;stroke-width:1")

	for i, row := range rows {
		barHeight := int(float64(plotHeight) * row.Revenue / maxRevenue)
		x := chartPadding + i*barSpace + (barSpace-barWidth)/2
		y := chartHeight - chartPadding - barHeight

		canvas.Rect(x, y, barWidth, barHeight, "fill:#4a90d9")
		canvas.Text(x+barWidth/2, chartHeight-chartPadding+16, row.Month,
			"text-anchor:middle;font-size:10px;font-family:sans-serif;fill:#555")
		canvas.Text(x+barWidth/2, y-4, fmt.Sprintf("%.0f", row.Revenue),
			"text-anchor:middle;font-size:9px;font-family:sans-serif;fill:#333")
	}

	canvas.End()
	return buf.Bytes()
}

// ExportTrendChart 渲染并写出月度趋势SVG文件
func ExportTrendChart(filename string, rows []inout.MonthlyTrendRow) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("创建导出目录失败: %w", err)
	}
	if err := os.WriteFile(filename, RenderTrendChart(rows), 0644); err != nil {
		return fmt.Errorf("写入SVG失败: %w", err)
	}
	return nil
}
