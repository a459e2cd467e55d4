// Package application 定价服务的应用层，负责参数换算、引擎分发与编排。
package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
	"github.com/wyfcoding/optionpricing/pkg/config"
	"github.com/wyfcoding/optionpricing/pkg/metrics"
)

// PricingService 定价应用服务。
// 三个引擎互不依赖，每次请求独立构造蒙特卡洛引擎，
// 保证随机流单属主，多个并发请求之间没有共享可变状态。
type PricingService struct {
	engineCfg config.EngineConfig
	analytic  *domain.BlackScholesEngine
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewPricingService 创建定价应用服务
func NewPricingService(engineCfg config.EngineConfig, logger *slog.Logger, m *metrics.Metrics) *PricingService {
	return &PricingService{
		engineCfg: engineCfg,
		analytic:  domain.NewBlackScholesEngine(),
		logger:    logger,
		metrics:   m,
	}
}

// toParams 将请求参数换算为领域值对象
func (s *PricingService) toParams(req ParametersRequest) (domain.OptionParameters, error) {
	spot, _ := req.Spot.Float64()
	strike, _ := req.Strike.Float64()
	return domain.NewOptionParameters(spot, strike, req.Maturity, req.Rate, req.Volatility, domain.OptionType(req.OptionType))
}

// stepsOrDefault 解析二叉树步数：缺省取配置默认值，超出上限报错
func (s *PricingService) stepsOrDefault(steps int) (int, error) {
	if steps == 0 {
		return s.engineCfg.DefaultSteps, nil
	}
	if steps > s.engineCfg.MaxSteps {
		return 0, fmt.Errorf("%w: steps %d exceeds limit %d", domain.ErrInvalidParameter, steps, s.engineCfg.MaxSteps)
	}
	return steps, nil
}

// pathsOrDefault 解析模拟路径数：缺省取配置默认值，超出上限报错
func (s *PricingService) pathsOrDefault(paths int) (int, error) {
	if paths == 0 {
		return s.engineCfg.DefaultPaths, nil
	}
	if paths > s.engineCfg.MaxPaths {
		return 0, fmt.Errorf("%w: paths %d exceeds limit %d", domain.ErrInvalidParameter, paths, s.engineCfg.MaxPaths)
	}
	return paths, nil
}

// monteCarloEngine 按请求构造模拟引擎，带种子时可复现
func (s *PricingService) monteCarloEngine(paths int, seed *int64) (*domain.MonteCarloEngine, error) {
	if seed != nil {
		return domain.NewSeededMonteCarloEngine(paths, *seed)
	}
	return domain.NewMonteCarloEngine(paths)
}

// Price 按指定模型定价
func (s *PricingService) Price(ctx context.Context, req PriceRequest) (*PriceDTO, error) {
	params, err := s.toParams(req.Parameters)
	if err != nil {
		s.metrics.ValidationFailuresTotal.Inc()
		return nil, err
	}

	start := time.Now()
	dto := &PriceDTO{Model: req.Model}

	switch req.Model {
	case PricingModelTypeBlackScholes:
		price, err := s.analytic.Price(params)
		if err != nil {
			return nil, err
		}
		dto.Price = decimal.NewFromFloat(price)

	case PricingModelTypeBinomial:
		steps, err := s.stepsOrDefault(req.Steps)
		if err != nil {
			s.metrics.ValidationFailuresTotal.Inc()
			return nil, err
		}
		engine, err := domain.NewBinomialEngine(steps)
		if err != nil {
			s.metrics.ValidationFailuresTotal.Inc()
			return nil, err
		}
		s.metrics.LatticeSteps.Observe(float64(steps))
		price, err := engine.Price(params)
		if err != nil {
			return nil, err
		}
		dto.Price = decimal.NewFromFloat(price)

	case PricingModelTypeMonteCarlo:
		paths, err := s.pathsOrDefault(req.Paths)
		if err != nil {
			s.metrics.ValidationFailuresTotal.Inc()
			return nil, err
		}
		engine, err := s.monteCarloEngine(paths, req.Seed)
		if err != nil {
			s.metrics.ValidationFailuresTotal.Inc()
			return nil, err
		}
		s.metrics.SimulationPaths.Observe(float64(paths))
		price, stderr, err := engine.PriceWithError(params)
		if err != nil {
			return nil, err
		}
		dto.Price = decimal.NewFromFloat(price)
		se := decimal.NewFromFloat(stderr)
		dto.StdError = &se

	default:
		s.metrics.ValidationFailuresTotal.Inc()
		return nil, fmt.Errorf("%w: pricing model %q", domain.ErrInvalidParameter, req.Model)
	}

	s.metrics.ObservePricing(string(req.Model), start)
	s.logger.InfoContext(ctx, "option priced",
		"model", req.Model,
		"type", params.Type,
		"price", dto.Price,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return dto, nil
}

// Greeks 计算解析引擎的价格与五个希腊字母
func (s *PricingService) Greeks(ctx context.Context, req ParametersRequest) (*GreeksDTO, error) {
	params, err := s.toParams(req)
	if err != nil {
		s.metrics.ValidationFailuresTotal.Inc()
		return nil, err
	}

	start := time.Now()
	price, err := s.analytic.Price(params)
	if err != nil {
		return nil, err
	}
	greeks, err := s.analytic.Greeks(params)
	if err != nil {
		return nil, err
	}
	d1, d2 := s.analytic.Terms(params)

	s.metrics.ObservePricing(string(PricingModelTypeBlackScholes), start)
	s.logger.InfoContext(ctx, "greeks calculated", "type", params.Type, "delta", greeks.Delta)

	return &GreeksDTO{
		Price:  decimal.NewFromFloat(price),
		Greeks: greeks.Map(),
		D1:     d1,
		D2:     d2,
	}, nil
}

// Compare 用三个模型为同一组参数定价并对比。
// 各引擎独立读取参数，互不依赖；偏差以解析价格为基准。
func (s *PricingService) Compare(ctx context.Context, req CompareRequest) (*ComparisonDTO, error) {
	params, err := s.toParams(req.Parameters)
	if err != nil {
		s.metrics.ValidationFailuresTotal.Inc()
		return nil, err
	}
	steps, err := s.stepsOrDefault(req.Steps)
	if err != nil {
		s.metrics.ValidationFailuresTotal.Inc()
		return nil, err
	}
	paths, err := s.pathsOrDefault(req.Paths)
	if err != nil {
		s.metrics.ValidationFailuresTotal.Inc()
		return nil, err
	}

	lattice, err := domain.NewBinomialEngine(steps)
	if err != nil {
		return nil, err
	}
	simulation, err := s.monteCarloEngine(paths, req.Seed)
	if err != nil {
		return nil, err
	}

	analyticPrice, err := s.analytic.Price(params)
	if err != nil {
		return nil, err
	}

	engines := []struct {
		model  PricingModelType
		engine domain.Priceable
	}{
		{PricingModelTypeBlackScholes, s.analytic},
		{PricingModelTypeBinomial, lattice},
		{PricingModelTypeMonteCarlo, simulation},
	}

	dto := &ComparisonDTO{Steps: steps, Paths: paths}
	for _, e := range engines {
		start := time.Now()
		price, err := e.engine.Price(params)
		if err != nil {
			return nil, err
		}
		s.metrics.ObservePricing(string(e.model), start)

		deviation := price - analyticPrice
		if deviation < 0 {
			deviation = -deviation
		}
		dto.Entries = append(dto.Entries, ComparisonEntry{
			Model:                 e.model,
			Price:                 decimal.NewFromFloat(price),
			DeviationFromAnalytic: decimal.NewFromFloat(deviation),
		})
	}

	s.logger.InfoContext(ctx, "models compared", "type", params.Type, "steps", steps, "paths", paths)
	return dto, nil
}

// PayoffCurve 计算到期收益曲线
func (s *PricingService) PayoffCurve(ctx context.Context, req CurveRequest) (*CurveDTO, error) {
	params, spots, err := s.curveInputs(req)
	if err != nil {
		return nil, err
	}

	values, err := domain.PayoffCurve(params, spots)
	if err != nil {
		return nil, err
	}
	return &CurveDTO{Spots: spots, Values: values}, nil
}

// PnLCurve 计算损益曲线。未给定建仓成本时取解析引擎价格。
func (s *PricingService) PnLCurve(ctx context.Context, req CurveRequest) (*CurveDTO, error) {
	params, spots, err := s.curveInputs(req)
	if err != nil {
		return nil, err
	}

	var price float64
	if req.Price != nil {
		price, _ = req.Price.Float64()
	} else {
		price, err = s.analytic.Price(params)
		if err != nil {
			return nil, err
		}
	}

	values, err := domain.PnLCurve(params, spots, domain.Direction(req.Direction), price)
	if err != nil {
		s.metrics.ValidationFailuresTotal.Inc()
		return nil, err
	}
	return &CurveDTO{Spots: spots, Values: values}, nil
}

// GreekSweep 沿标的价格扫描希腊字母，供图表渲染
func (s *PricingService) GreekSweep(ctx context.Context, req CurveRequest) (*SweepDTO, error) {
	params, spots, err := s.curveInputs(req)
	if err != nil {
		return nil, err
	}

	points, err := domain.SweepGreeks(params, spots)
	if err != nil {
		return nil, err
	}
	return &SweepDTO{Points: points}, nil
}

func (s *PricingService) curveInputs(req CurveRequest) (domain.OptionParameters, []float64, error) {
	params, err := s.toParams(req.Parameters)
	if err != nil {
		s.metrics.ValidationFailuresTotal.Inc()
		return domain.OptionParameters{}, nil, err
	}

	points := req.Points
	if points == 0 {
		points = s.engineCfg.SweepPoints
	}
	spots, err := domain.SpotRange(params.Strike, points)
	if err != nil {
		s.metrics.ValidationFailuresTotal.Inc()
		return domain.OptionParameters{}, nil, err
	}
	return params, spots, nil
}
