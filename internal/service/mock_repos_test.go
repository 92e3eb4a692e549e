package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"studie-planner/internal/model"
	"studie-planner/internal/planner"
	"studie-planner/internal/repository"
)

// mocks bundles the in-memory repositories behind one Repository.
type mocks struct {
	users    *mockUserRepo
	subjects *mockSubjectRepo
	tests    *mockTestRepo
	homework *mockHomeworkRepo
	planning *mockPlanningRepo
	settings *mockSettingsRepo
	question *mockQuestionRepo
	credits  *mockCreditRepo
}

func newMockRepository() (*repository.Repository, *mocks) {
	m := &mocks{
		users:    newMockUserRepo(),
		subjects: newMockSubjectRepo(),
		homework: newMockHomeworkRepo(),
		settings: newMockSettingsRepo(),
		credits:  newMockCreditRepo(),
	}
	m.tests = newMockTestRepo(m.subjects)
	m.planning = newMockPlanningRepo(m.tests, m.homework)
	m.question = newMockQuestionRepo(m.users)
	m.credits.users = m.users

	repo := &repository.Repository{
		User:     m.users,
		Subject:  m.subjects,
		Test:     m.tests,
		Homework: m.homework,
		Planning: m.planning,
		Settings: m.settings,
		Question: m.question,
		Credit:   m.credits,
	}
	return repo, m
}

// testMonday is the fixed "today" of the service tests.
var testMonday = time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func newTestGenerator(clock Clock) *planGenerator {
	return &planGenerator{
		planner: planner.New(),
		locker:  noopLocker{},
		lockTTL: time.Second,
		loc:     time.UTC,
		clock:   clock,
		logger:  zap.NewNop(),
	}
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) add(id, name, role, household string) *model.User {
	u := &model.User{UserID: id, Name: name, Role: role, HouseholdID: household}
	m.users[id] = u
	return u
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByHousehold(_ context.Context, householdID string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.HouseholdID == householdID {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

func (m *mockUserRepo) ListIDsByHousehold(ctx context.Context, householdID string) ([]string, error) {
	users, _ := m.ListByHousehold(ctx, householdID)
	ids := make([]string, len(users))
	for i := range users {
		ids[i] = users[i].UserID
	}
	return ids, nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[string]*model.Subject
	seq      int
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (m *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	if subject.SubjectID == "" {
		m.seq++
		subject.SubjectID = fmt.Sprintf("subject-%d", m.seq)
	}
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) ListByUser(_ context.Context, userID string) ([]model.Subject, error) {
	var result []model.Subject
	for _, s := range m.subjects {
		if s.UserID == userID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockSubjectRepo) Update(_ context.Context, subject *model.Subject) error {
	if _, ok := m.subjects[subject.SubjectID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *subject
	m.subjects[subject.SubjectID] = &cp
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, id string) error {
	delete(m.subjects, id)
	return nil
}

// ── Mock TestRepository ──

type mockTestRepo struct {
	tests    map[string]*model.Test
	subjects *mockSubjectRepo
	seq      int
	itemSeq  int
	rowLocks []string
}

func newMockTestRepo(subjects *mockSubjectRepo) *mockTestRepo {
	return &mockTestRepo{tests: make(map[string]*model.Test), subjects: subjects}
}

func (m *mockTestRepo) assignItemIDs(testID string, items []model.TestItem) {
	for i := range items {
		if items[i].TestItemID == "" {
			m.itemSeq++
			items[i].TestItemID = fmt.Sprintf("item-%d", m.itemSeq)
		}
		items[i].TestID = testID
	}
}

func (m *mockTestRepo) Create(_ context.Context, test *model.Test) error {
	if test.TestID == "" {
		m.seq++
		test.TestID = fmt.Sprintf("test-%d", m.seq)
	}
	m.assignItemIDs(test.TestID, test.Items)
	cp := *test
	cp.Items = append([]model.TestItem(nil), test.Items...)
	m.tests[test.TestID] = &cp
	return nil
}

func (m *mockTestRepo) load(t *model.Test) *model.Test {
	cp := *t
	cp.Items = append([]model.TestItem(nil), t.Items...)
	if s, ok := m.subjects.subjects[t.SubjectID]; ok {
		sc := *s
		cp.Subject = &sc
	}
	return &cp
}

func (m *mockTestRepo) GetByID(_ context.Context, id string) (*model.Test, error) {
	if t, ok := m.tests[id]; ok {
		return m.load(t), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTestRepo) ListByUser(_ context.Context, userID string) ([]model.Test, error) {
	var result []model.Test
	for _, t := range m.tests {
		if t.UserID == userID {
			result = append(result, *m.load(t))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockTestRepo) ReplaceItems(_ context.Context, testID string, items []model.TestItem) error {
	t, ok := m.tests[testID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.assignItemIDs(testID, items)
	t.Items = append([]model.TestItem(nil), items...)
	return nil
}

func (m *mockTestRepo) Delete(_ context.Context, id string) error {
	delete(m.tests, id)
	return nil
}

func (m *mockTestRepo) LockForUpdate(_ context.Context, id string) error {
	if _, ok := m.tests[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.rowLocks = append(m.rowLocks, id)
	return nil
}

// ── Mock HomeworkRepository ──

type mockHomeworkRepo struct {
	homework map[string]*model.Homework
	seq      int
}

func newMockHomeworkRepo() *mockHomeworkRepo {
	return &mockHomeworkRepo{homework: make(map[string]*model.Homework)}
}

func (m *mockHomeworkRepo) Create(_ context.Context, hw *model.Homework) error {
	if hw.HomeworkID == "" {
		m.seq++
		hw.HomeworkID = fmt.Sprintf("hw-%d", m.seq)
	}
	cp := *hw
	m.homework[hw.HomeworkID] = &cp
	return nil
}

func (m *mockHomeworkRepo) GetByID(_ context.Context, id string) (*model.Homework, error) {
	if hw, ok := m.homework[id]; ok {
		cp := *hw
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHomeworkRepo) ListByUser(_ context.Context, userID string) ([]model.Homework, error) {
	var result []model.Homework
	for _, hw := range m.homework {
		if hw.UserID == userID {
			result = append(result, *hw)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Deadline.Before(result[j].Deadline) })
	return result, nil
}

func (m *mockHomeworkRepo) SetDone(_ context.Context, id string, done bool) error {
	hw, ok := m.homework[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	hw.Done = done
	return nil
}

func (m *mockHomeworkRepo) Delete(_ context.Context, id string) error {
	delete(m.homework, id)
	return nil
}

// ── Mock PlanningRepository ──

type mockPlanningRepo struct {
	items    map[string]*model.PlanningItem
	tests    *mockTestRepo
	homework *mockHomeworkRepo
	seq      int
}

func newMockPlanningRepo(tests *mockTestRepo, homework *mockHomeworkRepo) *mockPlanningRepo {
	return &mockPlanningRepo{items: make(map[string]*model.PlanningItem), tests: tests, homework: homework}
}

func (m *mockPlanningRepo) BatchCreate(_ context.Context, items []model.PlanningItem) error {
	for i := range items {
		if items[i].PlanningItemID == "" {
			m.seq++
			items[i].PlanningItemID = fmt.Sprintf("plan-%d", m.seq)
		}
		cp := items[i]
		m.items[cp.PlanningItemID] = &cp
	}
	return nil
}

func (m *mockPlanningRepo) GetByID(_ context.Context, id string) (*model.PlanningItem, error) {
	if p, ok := m.items[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// preload attaches the test or homework with its subject.
func (m *mockPlanningRepo) preload(p model.PlanningItem) model.PlanningItem {
	if p.TestID != nil {
		if t, ok := m.tests.tests[*p.TestID]; ok {
			p.Test = m.tests.load(t)
		}
	}
	if p.HomeworkID != nil {
		if hw, ok := m.homework.homework[*p.HomeworkID]; ok {
			cp := *hw
			if s, ok := m.tests.subjects.subjects[hw.SubjectID]; ok {
				sc := *s
				cp.Subject = &sc
			}
			p.Homework = &cp
		}
	}
	return p
}

func (m *mockPlanningRepo) sorted(keep func(*model.PlanningItem) bool) []model.PlanningItem {
	var result []model.PlanningItem
	for _, p := range m.items {
		if keep(p) {
			result = append(result, m.preload(*p))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		if result[i].EstimatedMinutes != result[j].EstimatedMinutes {
			return result[i].EstimatedMinutes > result[j].EstimatedMinutes
		}
		return result[i].PlanningItemID < result[j].PlanningItemID
	})
	return result
}

func (m *mockPlanningRepo) ListByUserBetween(_ context.Context, userID string, from, to time.Time) ([]model.PlanningItem, error) {
	return m.sorted(func(p *model.PlanningItem) bool {
		return p.UserID == userID && !p.Date.Before(from) && p.Date.Before(to)
	}), nil
}

func (m *mockPlanningRepo) ListByUserOn(ctx context.Context, userID string, date time.Time) ([]model.PlanningItem, error) {
	return m.ListByUserBetween(ctx, userID, date, date.AddDate(0, 0, 1))
}

func (m *mockPlanningRepo) ListUnfinishedOn(_ context.Context, date time.Time) ([]model.PlanningItem, error) {
	return m.sorted(func(p *model.PlanningItem) bool {
		return p.Date.Equal(date) && !p.Done
	}), nil
}

func (m *mockPlanningRepo) byTest(testID string) []*model.PlanningItem {
	var result []*model.PlanningItem
	for _, p := range m.items {
		if p.TestID != nil && *p.TestID == testID {
			result = append(result, p)
		}
	}
	return result
}

func (m *mockPlanningRepo) ReplaceByTest(ctx context.Context, testID string, items []model.PlanningItem) error {
	_ = m.DeleteByTest(ctx, testID)
	return m.BatchCreate(ctx, items)
}

func (m *mockPlanningRepo) DeleteByTest(_ context.Context, testID string) error {
	for id, p := range m.items {
		if p.TestID != nil && *p.TestID == testID {
			delete(m.items, id)
		}
	}
	return nil
}

func (m *mockPlanningRepo) DeleteByHomework(_ context.Context, homeworkID string) error {
	for id, p := range m.items {
		if p.HomeworkID != nil && *p.HomeworkID == homeworkID {
			delete(m.items, id)
		}
	}
	return nil
}

func (m *mockPlanningRepo) SetDone(_ context.Context, id string, done bool, at *time.Time) error {
	p, ok := m.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Done, p.DoneAt = done, at
	return nil
}

func (m *mockPlanningRepo) MarkCreditsAwarded(_ context.Context, id string) (bool, error) {
	p, ok := m.items[id]
	if !ok || p.CreditsAwarded {
		return false, nil
	}
	p.CreditsAwarded = true
	return true, nil
}

func (m *mockPlanningRepo) ProgressByTests(_ context.Context, testIDs []string) (map[string]repository.Progress, error) {
	out := make(map[string]repository.Progress, len(testIDs))
	for _, id := range testIDs {
		p := repository.Progress{TestID: id}
		for _, it := range m.byTest(id) {
			p.Total++
			if it.Done {
				p.Done++
			}
		}
		out[id] = p
	}
	return out, nil
}

// ── Mock SettingsRepository ──

type mockSettingsRepo struct {
	settings map[string]*model.UserSettings
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{settings: make(map[string]*model.UserSettings)}
}

func (m *mockSettingsRepo) Get(_ context.Context, userID string) (*model.UserSettings, error) {
	if s, ok := m.settings[userID]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSettingsRepo) Upsert(_ context.Context, settings *model.UserSettings) error {
	cp := *settings
	m.settings[settings.UserID] = &cp
	return nil
}

// ── Mock QuestionRepository ──

type mockQuestionRepo struct {
	questions map[string]*model.Question
	users     *mockUserRepo
	seq       int
}

func newMockQuestionRepo(users *mockUserRepo) *mockQuestionRepo {
	return &mockQuestionRepo{questions: make(map[string]*model.Question), users: users}
}

func (m *mockQuestionRepo) Create(_ context.Context, q *model.Question) error {
	m.seq++
	if q.QuestionID == "" {
		q.QuestionID = fmt.Sprintf("q-%d", m.seq)
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = testMonday.Add(time.Duration(m.seq) * time.Minute)
	}
	cp := *q
	m.questions[q.QuestionID] = &cp
	return nil
}

func (m *mockQuestionRepo) GetByID(_ context.Context, id string) (*model.Question, error) {
	if q, ok := m.questions[id]; ok {
		cp := *q
		cp.Answers = append([]model.Answer(nil), q.Answers...)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockQuestionRepo) ListByHousehold(_ context.Context, householdID, status string, offset, limit int) ([]model.Question, int64, error) {
	var all []model.Question
	for _, q := range m.questions {
		if q.HouseholdID != householdID || (status != "" && q.Status != status) {
			continue
		}
		cp := *q
		cp.Asker = m.users.users[q.UserID]
		all = append(all, cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	if offset >= len(all) {
		return []model.Question{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockQuestionRepo) CreateAnswer(_ context.Context, a *model.Answer) error {
	q, ok := m.questions[a.QuestionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.AnswerID = fmt.Sprintf("a-%d", len(q.Answers)+1)
	q.Answers = append(q.Answers, *a)
	return nil
}

func (m *mockQuestionRepo) UpdateStatus(_ context.Context, id, status string) error {
	q, ok := m.questions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	q.Status = status
	return nil
}

// ── Mock CreditRepository ──

type mockCreditRepo struct {
	balances map[string]int
	txs      []model.CreditTransaction
	scores   []model.GameScore
	users    *mockUserRepo
}

func newMockCreditRepo() *mockCreditRepo {
	return &mockCreditRepo{balances: make(map[string]int)}
}

func (m *mockCreditRepo) Get(_ context.Context, userID string) (*model.GameCredit, error) {
	n, ok := m.balances[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.GameCredit{UserID: userID, Credits: n}, nil
}

func (m *mockCreditRepo) Add(_ context.Context, userIDs []string, amount int) error {
	for _, id := range userIDs {
		m.balances[id] += amount
	}
	return nil
}

func (m *mockCreditRepo) Spend(_ context.Context, userID string) (bool, error) {
	if m.balances[userID] <= 0 {
		return false, nil
	}
	m.balances[userID]--
	return true, nil
}

func (m *mockCreditRepo) LogTransactions(_ context.Context, txs []model.CreditTransaction) error {
	m.txs = append(m.txs, txs...)
	return nil
}

// completions counts the completion transactions of one entry.
func (m *mockCreditRepo) completions(planningItemID string) int {
	n := 0
	for _, tx := range m.txs {
		if tx.Reason == model.CreditReasonCompletion && tx.PlanningItemID != nil && *tx.PlanningItemID == planningItemID {
			n++
		}
	}
	return n
}

func (m *mockCreditRepo) CreateScore(_ context.Context, score *model.GameScore) error {
	score.ScoreID = fmt.Sprintf("score-%d", len(m.scores)+1)
	m.scores = append(m.scores, *score)
	return nil
}

func (m *mockCreditRepo) Leaderboard(_ context.Context, game, householdID string, limit int) ([]model.GameScore, error) {
	var result []model.GameScore
	for _, s := range m.scores {
		u, ok := m.users.users[s.UserID]
		if s.Game != game || !ok || u.HouseholdID != householdID {
			continue
		}
		s.User = u
		result = append(result, s)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Score > result[j].Score })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// hasPrefixCount counts descriptions starting with prefix.
func hasPrefixCount(items []model.PlanningItem, prefix string) int {
	n := 0
	for _, it := range items {
		if strings.HasPrefix(it.Description, prefix) {
			n++
		}
	}
	return n
}
