package asr

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/chengus/transcribe-audio/pkg/models"
	"github.com/chengus/transcribe-audio/pkg/utils"
)

// ServiceCreator 是创建识别服务实例的函数类型
type ServiceCreator func(audioPath string, config *models.Config) (Recognizer, error)

// ServiceStats 服务统计数据
type ServiceStats struct {
	SuccessCount int
	TotalCount   int
	Available    bool
}

// Selector 识别服务选择器，负责在多个识别服务之间进行选择
type Selector struct {
	mu          sync.RWMutex
	services    map[string]ServiceCreator // 服务创建函数
	weights     map[string]int            // 权重
	counters    map[string]int            // 使用计数
	stats       map[string]*ServiceStats  // 统计信息
	serviceList []string                  // 服务名称列表
}

// NewSelector 创建新的识别服务选择器
func NewSelector() *Selector {
	return &Selector{
		services:    make(map[string]ServiceCreator),
		weights:     make(map[string]int),
		counters:    make(map[string]int),
		stats:       make(map[string]*ServiceStats),
		serviceList: make([]string, 0),
	}
}

// RegisterService 注册识别服务
func (s *Selector) RegisterService(name string, creator ServiceCreator, weight int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.services[name] = creator
	s.weights[name] = weight
	s.counters[name] = 0
	s.stats[name] = &ServiceStats{Available: true}
	s.serviceList = append(s.serviceList, name)

	utils.Info("注册识别服务: %s, 权重: %d", name, weight)
}

// ReportResult 报告服务调用结果
func (s *Selector) ReportResult(serviceName string, success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stat, exists := s.stats[serviceName]; exists {
		if success {
			stat.SuccessCount++
		}
		stat.TotalCount++

		// 更新服务可用性
		if !success && stat.TotalCount > 5 && float64(stat.SuccessCount)/float64(stat.TotalCount) < 0.2 {
			stat.Available = false
			utils.Warn("识别服务 %s 成功率过低，临时禁用", serviceName)
		} else if success && !stat.Available {
			stat.Available = true
			utils.Info("识别服务 %s 恢复可用", serviceName)
		}
	}
}

// SelectService 使用加权随机策略选择一个可用的识别服务
func (s *Selector) SelectService() (string, ServiceCreator, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 计算可用服务的总权重
	totalWeight := 0
	for name, weight := range s.weights {
		if s.stats[name].Available {
			totalWeight += weight
		}
	}

	if totalWeight == 0 {
		return "", nil, false
	}

	// 随机选择
	r := rand.Intn(totalWeight)
	cumWeight := 0
	for _, name := range s.serviceList {
		if !s.stats[name].Available {
			continue
		}
		cumWeight += s.weights[name]
		if r < cumWeight {
			s.counters[name]++
			return name, s.services[name], true
		}
	}

	// 默认情况，返回第一个可用服务
	for _, name := range s.serviceList {
		if s.stats[name].Available {
			s.counters[name]++
			return name, s.services[name], true
		}
	}

	return "", nil, false
}

// GetStats 获取服务使用统计信息
func (s *Selector) GetStats() map[string]map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]map[string]interface{})
	for name, stat := range s.stats {
		successRate := 0.0
		if stat.TotalCount > 0 {
			successRate = float64(stat.SuccessCount) / float64(stat.TotalCount) * 100
		}

		result[name] = map[string]interface{}{
			"count":        s.counters[name],
			"success_rate": fmt.Sprintf("%.1f%%", successRate),
			"available":    stat.Available,
			"weight":       s.weights[name],
		}
	}

	return result
}

// Run 使用指定服务或自动选择服务来执行识别任务
//
// serviceName为"auto"时按权重自动选择。返回识别出的原始段落
// 和实际使用的服务名称
func (s *Selector) Run(ctx context.Context, audioPath, serviceName string, config *models.Config, callback ProgressCallback) ([]models.RawSegment, string, error) {
	var selectedName string
	var creator ServiceCreator
	var ok bool

	if serviceName == "auto" {
		// 自动选择服务
		selectedName, creator, ok = s.SelectService()
		if !ok {
			return nil, "", fmt.Errorf("没有可用的识别服务")
		}
	} else {
		// 使用指定的服务
		s.mu.RLock()
		creator, ok = s.services[serviceName]
		s.mu.RUnlock()

		if !ok {
			return nil, "", fmt.Errorf("未知的识别服务: %s", serviceName)
		}
		selectedName = serviceName
	}

	// 创建服务实例
	service, err := creator(audioPath, config)
	if err != nil {
		return nil, selectedName, fmt.Errorf("创建识别服务失败: %w", err)
	}

	// 执行识别
	segments, err := service.Recognize(ctx, callback)

	// 报告结果
	s.ReportResult(selectedName, err == nil)

	return segments, selectedName, err
}
