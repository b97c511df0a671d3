package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"

	mongodoc "github.com/Stuart1162/fizzyjuice/internal/infrastructure/mongo"
	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

type seedOptions struct {
	envName         string
	fixturesPath    string
	dropCollections bool
	randomSeed      int64
}

type fixtureFile struct {
	Users []userFixture `yaml:"users"`
	Jobs  []jobFixture  `yaml:"jobs"`
}

type userFixture struct {
	UID              string              `yaml:"uid"`
	DisplayName      string              `yaml:"displayName"`
	Email            string              `yaml:"email"`
	Role             string              `yaml:"role"`
	CompanyName      string              `yaml:"companyName"`
	CompanyLocation  string              `yaml:"companyLocation"`
	CompanyPostcode  string              `yaml:"companyPostcode"`
	ApplicationEmail string              `yaml:"applicationEmail"`
	InstagramURL     string              `yaml:"instagramUrl"`
	Preferences      *preferencesFixture `yaml:"preferences"`
}

type preferencesFixture struct {
	Strengths     []string `yaml:"strengths"`
	Roles         []string `yaml:"roles"`
	ContractTypes []string `yaml:"contractTypes"`
	Location      string   `yaml:"location"`
}

type jobFixture struct {
	Title            string   `yaml:"title"`
	Company          string   `yaml:"company"`
	Location         string   `yaml:"location"`
	Postcode         string   `yaml:"postcode"`
	Description      string   `yaml:"description"`
	JobType          string   `yaml:"jobType"`
	Salary           string   `yaml:"salary"`
	Roles            []string `yaml:"roles"`
	Shifts           []string `yaml:"shifts"`
	CompanyStrengths []string `yaml:"companyStrengths"`
	WordOnTheStreet  string   `yaml:"wordOnTheStreet"`
	WorkArrangement  string   `yaml:"workArrangement"`
	Skills           []string `yaml:"skills"`
	Requirements     []string `yaml:"requirements"`
	ApplyDisplay     string   `yaml:"applyDisplay"`
	ContactEmail     string   `yaml:"contactEmail"`
	ApplicationURL   string   `yaml:"applicationUrl"`
	SocialURL        string   `yaml:"socialUrl"`
	CreatedBy        string   `yaml:"createdBy"`
	Draft            bool     `yaml:"draft"`
	AgeDays          int      `yaml:"ageDays"`
}

func main() {
	opts := parseFlags()
	loadEnvFiles(opts.envName)

	fixtures, err := loadFixtures(opts.fixturesPath)
	if err != nil {
		log.Fatalf("fixtures の読み込みに失敗しました: %v", err)
	}

	collections := mongodoc.Collections{
		Jobs:                envOrDefault("JOB_COLLECTION", "jobs"),
		Prefs:               envOrDefault("PREFS_COLLECTION", "prefs"),
		SavedJobs:           envOrDefault("SAVED_JOB_COLLECTION", "saved_jobs"),
		JobMetrics:          envOrDefault("JOB_METRICS_COLLECTION", "job_metrics"),
		PendingPosts:        envOrDefault("PENDING_POST_COLLECTION", "pending_posts"),
		FailedNotifications: envOrDefault("FAILED_NOTIFICATION_COLLECTION", "failed_notifications"),
	}
	mongoURI := envOrDefault("MONGO_URI", "mongodb://localhost:27017")
	dbName := envOrDefault("MONGO_DB", "fizzyjuice")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("MongoDB 接続に失敗しました: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(dbName)

	if opts.dropCollections {
		dropCollections(ctx, db, collections)
		log.Printf("既存コレクションを削除しました")
	}
	if err := mongodoc.EnsureIndexes(ctx, db, collections); err != nil {
		log.Fatalf("インデックス作成に失敗しました: %v", err)
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))
	now := time.Now().UTC()

	prefs := mongodoc.NewPrefsRepository(db, collections.Prefs)
	users, err := seedUsers(ctx, prefs, fixtures.Users, now)
	if err != nil {
		log.Fatalf("ユーザーの投入に失敗しました: %v", err)
	}

	jobRepo := mongodoc.NewJobRepository(db, collections.Jobs)
	refs := domain.NewRefGenerator(jobRepo.RefExists, rand.NewSource(opts.randomSeed))
	metrics := mongodoc.NewMetricsRepository(db, collections.JobMetrics)
	jobs, err := seedJobs(ctx, jobRepo, refs, metrics, rng, fixtures.Jobs, now)
	if err != nil {
		log.Fatalf("求人の投入に失敗しました: %v", err)
	}

	log.Printf("Seed 完了: users=%d jobs=%d", users, jobs)
	log.Printf("Mongo: %s / %s (env=%s)", mongoURI, dbName, opts.envName)
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.envName, "env", "local", "env ディレクトリ内の env ファイル名 (例: local, staging)")
	flag.StringVar(&opts.fixturesPath, "file", "", "YAML fixtures のパス (省略時は組み込みデータ)")
	flag.BoolVar(&opts.dropCollections, "drop", true, "既存コレクションを削除してから投入する")
	flag.Int64Var(&opts.randomSeed, "seed", time.Now().UnixNano(), "乱数シード（再現用）")
	flag.Parse()
	return opts
}

// loadEnvFiles reads env/shared.env and env/<name>.env when present. Existing variables win.
func loadEnvFiles(envName string) {
	base := filepath.Clean("env")
	for _, file := range []string{
		filepath.Join(base, "shared.env"),
		filepath.Join(base, fmt.Sprintf("%s.env", envName)),
		".env",
	} {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			log.Printf("WARN: %s の読み込みに失敗: %v", file, err)
		}
	}
}

func loadFixtures(path string) (fixtureFile, error) {
	data := defaultFixtures
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fixtureFile{}, err
		}
		data = raw
	}
	var fixtures fixtureFile
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return fixtureFile{}, fmt.Errorf("parse fixtures: %w", err)
	}
	return fixtures, nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func dropCollections(ctx context.Context, db *mongo.Database, c mongodoc.Collections) {
	for _, name := range []string{c.Jobs, c.Prefs, c.SavedJobs, c.JobMetrics, c.PendingPosts, c.FailedNotifications} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			log.Printf("WARN: コレクション %s の削除に失敗: %v", name, err)
		}
	}
}

func seedUsers(ctx context.Context, repo *mongodoc.PrefsRepository, users []userFixture, now time.Time) (int, error) {
	for _, u := range users {
		if strings.TrimSpace(u.UID) == "" {
			return 0, fmt.Errorf("user without uid: %q", u.Email)
		}
		created := now
		profile := &domain.Profile{
			UserID:           u.UID,
			DisplayName:      u.DisplayName,
			Email:            u.Email,
			Role:             domain.Role(strings.ToLower(strings.TrimSpace(u.Role))),
			CompanyName:      u.CompanyName,
			CompanyLocation:  u.CompanyLocation,
			CompanyPostcode:  u.CompanyPostcode,
			ApplicationEmail: u.ApplicationEmail,
			InstagramURL:     u.InstagramURL,
			CreatedAt:        &created,
			UpdatedAt:        &created,
		}
		if _, err := repo.UpsertProfile(ctx, profile); err != nil {
			return 0, fmt.Errorf("profile %s: %w", u.UID, err)
		}
		if u.Preferences != nil {
			prefs := domain.Preferences{
				Strengths:     u.Preferences.Strengths,
				Roles:         u.Preferences.Roles,
				ContractTypes: u.Preferences.ContractTypes,
				Location:      u.Preferences.Location,
			}
			if err := repo.SavePreferences(ctx, u.UID, prefs); err != nil {
				return 0, fmt.Errorf("preferences %s: %w", u.UID, err)
			}
		}
	}
	return len(users), nil
}

func seedJobs(
	ctx context.Context,
	repo *mongodoc.JobRepository,
	refs *domain.RefGenerator,
	metrics *mongodoc.MetricsRepository,
	rng *rand.Rand,
	jobs []jobFixture,
	now time.Time,
) (int, error) {
	for _, f := range jobs {
		created := now.Add(-time.Duration(f.AgeDays) * 24 * time.Hour)
		ref, err := refs.Next(ctx)
		if err != nil {
			return 0, fmt.Errorf("ref for %q: %w", f.Title, err)
		}
		job := &domain.Job{
			Title:            f.Title,
			Company:          f.Company,
			Location:         f.Location,
			Postcode:         f.Postcode,
			Description:      f.Description,
			JobType:          f.JobType,
			Salary:           f.Salary,
			Roles:            f.Roles,
			Shifts:           f.Shifts,
			CompanyStrengths: f.CompanyStrengths,
			WordOnTheStreet:  f.WordOnTheStreet,
			WorkArrangement:  f.WorkArrangement,
			Skills:           f.Skills,
			Requirements:     f.Requirements,
			ApplyDisplay:     f.ApplyDisplay,
			ContactEmail:     f.ContactEmail,
			ApplicationURL:   f.ApplicationURL,
			SocialURL:        f.SocialURL,
			Draft:            f.Draft,
			CreatedBy:        f.CreatedBy,
			Ref:              ref,
			CreatedAt:        &created,
			UpdatedAt:        &created,
		}
		if err := repo.Create(ctx, job); err != nil {
			return 0, fmt.Errorf("job %q: %w", f.Title, err)
		}
		if job.Draft {
			continue
		}
		// 公開済みの求人にはそれらしい閲覧数を付けておく
		views := int64(rng.Intn(200) + 10)
		counts := map[domain.MetricKind]int64{
			domain.MetricViews:   views,
			domain.MetricSaves:   views / int64(rng.Intn(5)+5),
			domain.MetricApplies: views / int64(rng.Intn(10)+10),
		}
		for kind, delta := range counts {
			if delta == 0 {
				continue
			}
			if err := metrics.Increment(ctx, job.ID, kind, delta); err != nil {
				return 0, fmt.Errorf("metrics %q: %w", f.Title, err)
			}
		}
	}
	return len(jobs), nil
}
