package report_service

import (
	"encoding/json"
	"fmt"
	"log"

	"ecom-insight/inout"
	"ecom-insight/services/analytics_service"
	"ecom-insight/utils"
)

// ExportRun 把一次运行的全部成功报表落盘，返回写出的文件路径。
// 月度趋势报表额外渲染一张SVG图。
func ExportRun(record *RunRecord, dir, format string) ([]string, error) {
	var files []string

	for _, res := range record.Results {
		if res.Err != "" || res.Rows == nil {
			continue
		}

		var data interface{}
		if err := json.Unmarshal(res.Rows, &data); err != nil {
			return files, fmt.Errorf("报表 %s 数据解析失败: %w", res.Name, err)
		}

		filename := TimestampedFilename(dir, res.Name, format)
		var err error
		if format == "csv" {
			err = ExportCSV(filename, data)
		} else {
			err = ExportJSON(filename, data)
		}
		if err != nil {
			return files, fmt.Errorf("报表 %s 导出失败: %w", res.Name, err)
		}
		files = append(files, filename)

		// 月度趋势附带SVG图
		if res.Name == analytics_service.ReportMonthlyTrend {
			var rows []inout.MonthlyTrendRow
			if err := json.Unmarshal(res.Rows, &rows); err == nil {
				chartFile := TimestampedFilename(dir, res.Name, "svg")
				if err := ExportTrendChart(chartFile, rows); err != nil {
					log.Printf("趋势图导出失败: %v", err)
				} else {
					files = append(files, chartFile)
				}
			}
		}
	}
	return files, nil
}

// UploadRun 把导出的文件上传到对象存储，返回对象名列表
func UploadRun(oss *utils.OSSUtil, files []string, directory string) ([]string, error) {
	var objects []string
	for _, file := range files {
		object, err := oss.UploadReportFile(file, directory)
		if err != nil {
			return objects, fmt.Errorf("上传 %s 失败: %w", file, err)
		}
		objects = append(objects, object)
	}
	return objects, nil
}
