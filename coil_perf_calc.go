package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"coil_perf_calc/coilcooling"
	"coil_perf_calc/logger"

	"github.com/google/uuid"
)

type Config struct {
	InputPath     string
	OutputDataDir string
	WeatherPath   string
	SchedulePath  string
	Interval      Interval
}

/*
コイル性能計算処理の実行

	Args:
		cfg: 実行条件
		lg: ロガー

	Returns:
		計算結果の集計

	Notes:
		出力フォルダに result_detail.csv と sizing_report.csv を保存する。
		気象データの指定が無い場合は定格外気条件を用いる。
*/
func run(cfg Config, lg *logger.Logger) (Summary, error) {
	run_id := uuid.New().String()
	lg.Infof("run id: %s", run_id)
	lg.Infof("interval: %s (%g s)", cfg.Interval, cfg.Interval.get_delta_t())

	// ---- 事前準備 ----

	// 出力ディレクトリの作成
	if err := os.MkdirAll(cfg.OutputDataDir, 0755); err != nil {
		return Summary{}, fmt.Errorf("`%s` is not a directory: %w", cfg.OutputDataDir, err)
	}

	// 計算条件JSONファイルの読み込み
	lg.Infof("計算条件JSONファイルの読み込み開始")
	rd, err := load_input(cfg.InputPath)
	if err != nil {
		return Summary{}, err
	}
	reg, err := rd.registry()
	if err != nil {
		return Summary{}, err
	}

	// 気象データの読み込み
	var w *Weather
	if cfg.WeatherPath == "" {
		lg.Infof("気象データの指定が無いため定格外気条件を用いる")
		rated := coilcooling.RatedOutdoor()
		w = &Weather{
			theta_o_ns: []float64{rated.DryBulb},
			x_o_ns:     []float64{rated.HumRat},
			p_o_ns:     []float64{rated.Pressure},
		}
	} else {
		lg.Infof("Load weather data from `%s`", cfg.WeatherPath)
		if w, err = load_weather(cfg.WeatherPath); err != nil {
			return Summary{}, err
		}
	}

	// 制御スケジュールの読み込み
	lg.Infof("Load schedule from `%s`", cfg.SchedulePath)
	scd, err := load_schedule(cfg.SchedulePath)
	if err != nil {
		return Summary{}, err
	}

	psy := coilcooling.MoistAir{}
	env := &weatherCursor{w: w}

	mode, err := coilcooling.NewOperatingMode(rd.Coil.OperatingMode, reg, coilcooling.Deps{
		Env:      env,
		Psy:      psy,
		Reporter: lg,
	})
	if err != nil {
		return Summary{}, fmt.Errorf("coil %q: %w", rd.Coil.Name, err)
	}

	// 定格値の確定
	sizer := NewDesignSizer(rd.Design, psy, lg, run_id)
	sizing_err := mode.SizeOperatingMode(sizer)
	sizing_path := filepath.Join(cfg.OutputDataDir, "sizing_report.csv")
	lg.Infof("Save sizing report to `%s`", sizing_path)
	if err := save_csv(sizing_path, sizer.report()); err != nil && sizing_err == nil {
		return Summary{}, err
	}
	if sizing_err != nil {
		return Summary{}, fmt.Errorf("coil %q: %w", rd.Coil.Name, sizing_err)
	}

	// ---- 計算 ----

	rec := NewRecorder(cfg.Interval)
	for n := 0; n < scd.number_of_steps(); n++ {
		env.n = n
		row := scd.rows[n]
		inlet := scd.inlet(n, psy, env.OutBaroPress())
		res := mode.CalcOperatingMode(inlet, row.PLR, row.SpeedNumber, row.SpeedRatio, scd.fan[n])
		rec.record(n, env, row, scd.fan[n], inlet, res)
	}

	// ---- 計算結果ファイルの保存 ----

	result_path := filepath.Join(cfg.OutputDataDir, "result_detail.csv")
	lg.Infof("Save calculation results data to `%s`", result_path)
	if err := rec.save(result_path); err != nil {
		return Summary{}, err
	}

	s := rec.summarize()
	lg.Infof("steps: %d, peak power: %.1f W, mean RTF: %.3f, electric energy: %.3f kWh, cooling: %.3f kWh, COP: %.2f",
		s.NumberOfSteps, s.PeakPower, s.MeanRTF, s.ElectricEnergy, s.TotalCoolingHeat, s.SeasonalCOP)
	if n := len(lg.Warnings()); n > 0 {
		lg.Infof("%d warnings", n)
	}
	return s, nil
}

func main() {
	var input string
	flag.StringVar(&input, "input", "", "計算を実行するJSONファイル")

	var output_data_dir string
	flag.StringVar(&output_data_dir, "o", ".", "出力フォルダ")

	var weather_path string
	flag.StringVar(&weather_path, "weather_path", "", "気象データのパスを指定します。指定しない場合は定格外気条件を用います。")

	var schedule_path string
	flag.StringVar(&schedule_path, "schedule_path", "", "制御スケジュールのパスを指定します。")

	var interval string
	flag.StringVar(&interval, "interval", string(IntervalH1), "制御スケジュールの時間間隔を指定します。 (1h, 30m, 15m)")

	var logLevel string
	flag.StringVar(&logLevel, "log", "ERROR", "ログレベルを指定します。 (Default=ERROR)")

	// 引数を受け取る
	flag.Parse()

	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		log.Fatal(err)
	}
	logger.SetLevel(level)

	itv, err := ParseInterval(interval)
	if err != nil {
		log.Fatal(err)
	}
	if input == "" || schedule_path == "" {
		log.Fatal(errors.New("-input and -schedule_path are required"))
	}

	start := time.Now()

	_, err = run(Config{
		InputPath:     input,
		OutputDataDir: output_data_dir,
		WeatherPath:   weather_path,
		SchedulePath:  schedule_path,
		Interval:      itv,
	}, logger.Default())
	if err != nil {
		log.Fatal(err)
	}

	elapsedTime := time.Since(start)
	log.Printf("elapsed_time: %v [sec]", elapsedTime)
}
