package analyzer

// SkillRecord holds the static metadata for one canonical skill: the roles
// it signals and its relevance weight (0.0-1.0).
type SkillRecord struct {
	Roles  []string
	Weight float64
}

// skillTable maps canonical lowercase skill identifiers to their role
// associations and weights. Built once at process start, never mutated.
var skillTable = map[string]SkillRecord{
	// Programming Languages
	"python":     {Roles: []string{"Data Scientist", "Software Engineer", "ML Engineer", "Backend Developer"}, Weight: 0.9},
	"java":       {Roles: []string{"Backend Developer", "Software Engineer", "Android Developer"}, Weight: 0.8},
	"javascript": {Roles: []string{"Frontend Developer", "Full Stack Developer", "Web Developer"}, Weight: 0.85},
	"typescript": {Roles: []string{"Frontend Developer", "Full Stack Developer"}, Weight: 0.8},
	"c++":        {Roles: []string{"Software Engineer", "Game Developer", "Embedded Systems Engineer"}, Weight: 0.75},
	"c#":         {Roles: []string{"Software Engineer", ".NET Developer", "Game Developer"}, Weight: 0.7},
	"go":         {Roles: []string{"Backend Developer", "DevOps Engineer"}, Weight: 0.75},
	"rust":       {Roles: []string{"Systems Engineer", "Backend Developer"}, Weight: 0.7},
	"php":        {Roles: []string{"Backend Developer", "Web Developer"}, Weight: 0.6},
	"ruby":       {Roles: []string{"Backend Developer", "Full Stack Developer"}, Weight: 0.65},
	"swift":      {Roles: []string{"iOS Developer", "Mobile Developer"}, Weight: 0.8},
	"kotlin":     {Roles: []string{"Android Developer", "Mobile Developer"}, Weight: 0.8},
	"r":          {Roles: []string{"Data Scientist", "Data Analyst", "Statistician"}, Weight: 0.75},

	// Web Development
	"html":     {Roles: []string{"Frontend Developer", "Web Developer", "UI Developer"}, Weight: 0.7},
	"css":      {Roles: []string{"Frontend Developer", "Web Developer", "UI Developer"}, Weight: 0.7},
	"react":    {Roles: []string{"Frontend Developer", "UI Developer", "Full Stack Developer"}, Weight: 0.9},
	"angular":  {Roles: []string{"Frontend Developer", "UI Developer"}, Weight: 0.8},
	"vue":      {Roles: []string{"Frontend Developer", "UI Developer"}, Weight: 0.75},
	"node.js":  {Roles: []string{"Backend Developer", "Full Stack Developer"}, Weight: 0.85},
	"node":     {Roles: []string{"Backend Developer", "Full Stack Developer"}, Weight: 0.85},
	"express":  {Roles: []string{"Backend Developer", "Full Stack Developer"}, Weight: 0.7},
	"django":   {Roles: []string{"Backend Developer", "Python Developer"}, Weight: 0.75},
	"flask":    {Roles: []string{"Backend Developer", "Python Developer"}, Weight: 0.7},
	"spring":   {Roles: []string{"Backend Developer", "Java Developer"}, Weight: 0.8},
	"jquery":   {Roles: []string{"Frontend Developer", "Web Developer"}, Weight: 0.5},
	"graphql":  {Roles: []string{"Backend Developer", "Full Stack Developer"}, Weight: 0.7},
	"rest api": {Roles: []string{"Backend Developer", "Full Stack Developer"}, Weight: 0.8},

	// Data Science & ML
	"pandas":           {Roles: []string{"Data Scientist", "Data Analyst", "ML Engineer"}, Weight: 0.85},
	"numpy":            {Roles: []string{"Data Scientist", "ML Engineer"}, Weight: 0.8},
	"scikit-learn":     {Roles: []string{"Data Scientist", "ML Engineer"}, Weight: 0.85},
	"tensorflow":       {Roles: []string{"ML Engineer", "Data Scientist", "AI Engineer"}, Weight: 0.9},
	"pytorch":          {Roles: []string{"ML Engineer", "Data Scientist", "AI Engineer"}, Weight: 0.9},
	"keras":            {Roles: []string{"ML Engineer", "Data Scientist"}, Weight: 0.8},
	"machine learning": {Roles: []string{"ML Engineer", "Data Scientist"}, Weight: 0.95},
	"deep learning":    {Roles: []string{"ML Engineer", "AI Engineer"}, Weight: 0.9},
	"nlp":              {Roles: []string{"ML Engineer", "Data Scientist", "NLP Engineer"}, Weight: 0.85},
	"computer vision":  {Roles: []string{"ML Engineer", "Computer Vision Engineer"}, Weight: 0.85},

	// Cloud & DevOps
	"aws":        {Roles: []string{"Cloud Engineer", "DevOps Engineer", "Solutions Architect"}, Weight: 0.9},
	"azure":      {Roles: []string{"Cloud Engineer", "DevOps Engineer", "Solutions Architect"}, Weight: 0.85},
	"gcp":        {Roles: []string{"Cloud Engineer", "DevOps Engineer"}, Weight: 0.85},
	"docker":     {Roles: []string{"DevOps Engineer", "Cloud Engineer", "Software Engineer"}, Weight: 0.9},
	"kubernetes": {Roles: []string{"DevOps Engineer", "Cloud Engineer"}, Weight: 0.9},
	"terraform":  {Roles: []string{"DevOps Engineer", "Cloud Engineer", "Site Reliability Engineer"}, Weight: 0.85},
	"ci/cd":      {Roles: []string{"DevOps Engineer", "Site Reliability Engineer"}, Weight: 0.85},
	"jenkins":    {Roles: []string{"DevOps Engineer", "Build Engineer"}, Weight: 0.75},
	"prometheus": {Roles: []string{"DevOps Engineer", "Site Reliability Engineer"}, Weight: 0.75},
	"grafana":    {Roles: []string{"DevOps Engineer", "Site Reliability Engineer"}, Weight: 0.7},

	// Database
	"sql":           {Roles: []string{"Data Analyst", "Data Engineer", "Backend Developer", "Database Administrator"}, Weight: 0.9},
	"postgresql":    {Roles: []string{"Database Administrator", "Backend Developer", "Data Engineer"}, Weight: 0.8},
	"mysql":         {Roles: []string{"Database Administrator", "Backend Developer"}, Weight: 0.75},
	"mongodb":       {Roles: []string{"Backend Developer", "Database Administrator"}, Weight: 0.8},
	"nosql":         {Roles: []string{"Backend Developer", "Database Administrator"}, Weight: 0.75},
	"oracle":        {Roles: []string{"Database Administrator", "Backend Developer"}, Weight: 0.7},
	"elasticsearch": {Roles: []string{"Search Engineer", "Data Engineer"}, Weight: 0.7},
	"hadoop":        {Roles: []string{"Data Engineer", "Big Data Engineer"}, Weight: 0.8},
	"spark":         {Roles: []string{"Data Engineer", "Big Data Engineer", "Data Scientist"}, Weight: 0.85},
	"kafka":         {Roles: []string{"Data Engineer", "Software Engineer"}, Weight: 0.75},

	// UI/UX Design
	"figma":         {Roles: []string{"UI Designer", "UX Designer", "Product Designer"}, Weight: 0.9},
	"sketch":        {Roles: []string{"UI Designer", "UX Designer"}, Weight: 0.8},
	"adobe xd":      {Roles: []string{"UI Designer", "UX Designer"}, Weight: 0.8},
	"photoshop":     {Roles: []string{"UI Designer", "Graphic Designer"}, Weight: 0.7},
	"illustrator":   {Roles: []string{"UI Designer", "Graphic Designer"}, Weight: 0.7},
	"user research": {Roles: []string{"UX Designer", "UX Researcher"}, Weight: 0.85},
	"wireframing":   {Roles: []string{"UX Designer", "UI Designer"}, Weight: 0.8},
	"prototyping":   {Roles: []string{"UX Designer", "UI Designer", "Product Designer"}, Weight: 0.85},

	// Product Management
	"product management": {Roles: []string{"Product Manager", "Product Owner"}, Weight: 0.95},
	"agile":              {Roles: []string{"Product Manager", "Scrum Master", "Project Manager"}, Weight: 0.8},
	"scrum":              {Roles: []string{"Product Manager", "Scrum Master", "Project Manager"}, Weight: 0.85},
	"kanban":             {Roles: []string{"Product Manager", "Project Manager"}, Weight: 0.7},
	"jira":               {Roles: []string{"Product Manager", "Project Manager", "Scrum Master"}, Weight: 0.7},
	"product roadmap":    {Roles: []string{"Product Manager", "Product Owner"}, Weight: 0.85},
	"user stories":       {Roles: []string{"Product Manager", "Product Owner", "Business Analyst"}, Weight: 0.8},

	// Blockchain
	"blockchain":     {Roles: []string{"Blockchain Developer", "Smart Contract Engineer"}, Weight: 0.9},
	"ethereum":       {Roles: []string{"Blockchain Developer", "Smart Contract Engineer"}, Weight: 0.85},
	"solidity":       {Roles: []string{"Smart Contract Engineer", "Blockchain Developer"}, Weight: 0.9},
	"web3":           {Roles: []string{"Blockchain Developer", "Web3 Engineer"}, Weight: 0.9},
	"smart contract": {Roles: []string{"Smart Contract Engineer", "Blockchain Developer"}, Weight: 0.9},

	// Cybersecurity
	"penetration testing":      {Roles: []string{"Security Engineer", "Penetration Tester"}, Weight: 0.9},
	"security analysis":        {Roles: []string{"Security Engineer", "Security Analyst"}, Weight: 0.85},
	"vulnerability assessment": {Roles: []string{"Security Engineer", "Security Analyst"}, Weight: 0.85},
	"network security":         {Roles: []string{"Network Security Engineer", "Security Engineer"}, Weight: 0.8},
	"cryptography":             {Roles: []string{"Security Engineer", "Cryptographer"}, Weight: 0.8},
	"siem":                     {Roles: []string{"Security Analyst", "Security Engineer"}, Weight: 0.75},
}

// skillCategory is one bucket of the categorization table. Categories are
// checked in slice order: a skill that appears in more than one backing set
// is assigned to the first matching category only (first-match-wins), so a
// skill is never reported twice.
type skillCategory struct {
	Name   string
	Skills map[string]struct{}
}

var skillCategories = []skillCategory{
	{"Programming Languages", setOf(
		"python", "java", "javascript", "typescript", "c++", "c#", "go",
		"rust", "php", "ruby", "swift", "kotlin", "r", "scala")},
	{"Web Development", setOf(
		"html", "css", "react", "angular", "vue", "node.js", "express",
		"django", "flask", "spring", "jquery", "graphql", "rest api",
		"asp.net", "bootstrap", "tailwind", "webpack", "babel")},
	{"Data Science & ML", setOf(
		"machine learning", "deep learning", "tensorflow", "pytorch", "keras",
		"pandas", "numpy", "scikit-learn", "nlp", "computer vision", "data mining",
		"statistical analysis", "forecasting", "a/b testing", "big data")},
	{"Cloud & DevOps", setOf(
		"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ci/cd",
		"jenkins", "prometheus", "grafana", "ansible", "puppet", "chef",
		"cloudformation", "lambda", "microservices", "serverless")},
	{"Database", setOf(
		"sql", "postgresql", "mysql", "mongodb", "nosql", "oracle",
		"elasticsearch", "hadoop", "spark", "kafka", "redis", "cassandra",
		"dynamodb", "database design", "data modeling", "etl")},
	{"UI/UX Design", setOf(
		"figma", "sketch", "adobe xd", "photoshop", "illustrator",
		"user research", "wireframing", "prototyping", "usability testing",
		"information architecture", "interaction design", "visual design")},
	{"Project Management", setOf(
		"agile", "scrum", "kanban", "jira", "project planning",
		"stakeholder management", "risk management", "sprint planning",
		"product roadmap", "user stories", "pmp", "prince2")},
	{"Blockchain", setOf(
		"blockchain", "ethereum", "solidity", "web3", "smart contract",
		"cryptocurrency", "defi", "consensus algorithms", "tokenomics")},
	{"Cybersecurity", setOf(
		"penetration testing", "security analysis", "vulnerability assessment",
		"network security", "cryptography", "siem", "soc", "threat intelligence",
		"incident response", "security auditing", "ethical hacking")},
	{"Soft Skills", setOf(
		"communication", "leadership", "teamwork", "problem solving",
		"critical thinking", "time management", "creativity", "adaptability",
		"negotiation", "presentation", "stakeholder management")},
}

// criticalSkills lists the skills a candidate is expected to show for each
// role. Used for missing-skill reporting and job-match scoring.
var criticalSkills = map[string]map[string]struct{}{
	"Software Engineer":    setOf("python", "javascript", "ci/cd", "git", "cloud", "testing"),
	"Data Scientist":       setOf("python", "machine learning", "sql", "pandas", "statistics"),
	"ML Engineer":          setOf("tensorflow", "pytorch", "machine learning", "python", "deployment"),
	"Frontend Developer":   setOf("react", "javascript", "typescript", "css", "responsive design"),
	"Backend Developer":    setOf("node.js", "python", "java", "databases", "api design"),
	"DevOps Engineer":      setOf("docker", "kubernetes", "ci/cd", "aws", "terraform"),
	"Product Manager":      setOf("product strategy", "stakeholder management", "agile", "user stories", "roadmapping"),
	"UX Designer":          setOf("figma", "user research", "wireframing", "prototyping", "usability testing"),
	"Data Engineer":        setOf("python", "sql", "etl", "spark", "data modeling"),
	"Cloud Engineer":       setOf("aws", "azure", "kubernetes", "terraform", "networking"),
	"Blockchain Developer": setOf("solidity", "web3", "smart contracts", "ethereum", "security"),
}

// sectionKeywords are the known section names scanned by the secondary
// (bullet-prefixed) header heuristic.
var sectionKeywords = []string{
	"education", "experience", "work experience", "employment", "skills",
	"projects", "publications", "certifications", "courses", "awards",
	"summary", "objective", "professional summary", "about me", "contact",
	"interests", "languages", "volunteering", "references",
}

// degreeLevels ranks degree tokens for education scoring.
var degreeLevels = map[string]int{
	"phd":         5,
	"doctorate":   5,
	"masters":     4,
	"mba":         4,
	"ms":          4,
	"ma":          4,
	"bachelors":   3,
	"bs":          3,
	"ba":          3,
	"btech":       3,
	"associate":   2,
	"certificate": 1,
	"diploma":     1,
}

// stopwords filter noise out of pattern-discovered skill tokens.
var stopwords = setOf(
	"the", "and", "a", "an", "in", "on", "for", "with", "to", "from", "of", "at", "by",
	"is", "are", "was", "were", "be", "being", "been", "this", "that", "these", "those",
	"it", "its", "as", "but", "if", "or", "because", "while", "so", "such", "just", "into",
	"than", "then", "out", "about", "over", "under", "again", "further", "off", "up", "down",
	"only", "own", "same", "very", "can", "will", "should", "could", "would", "might", "must",
)

// contentActionVerbs are the verbs the ATS content-quality rubric rewards.
var contentActionVerbs = []string{
	"developed", "implemented", "created", "designed", "managed", "led", "improved",
	"built", "collaborated", "maintained", "authored", "integrated", "deployed",
}

// suggestionActionVerbs is the smaller verb list used by the formatting
// suggestion checklist.
var suggestionActionVerbs = []string{"managed", "developed", "created", "improved", "increased", "reduced"}

var (
	pastTenseMarkers    = []string{"managed", "developed", "created", "implemented", "led", "designed"}
	presentTenseMarkers = []string{"manage", "develop", "create", "implement", "lead", "design"}
)

// experienceLevelScores maps seniority labels onto the 0-100 scale used by
// the overall-score blend.
var experienceLevelScores = map[string]int{
	"Entry-level": 60,
	"Junior":      70,
	"Mid-level":   85,
	"Senior":      100,
}

// roleSkills is the reverse of skillTable: role name to the set of skills
// whose metadata lists it. Built once from skillTable.
var roleSkills = buildRoleSkills()

func buildRoleSkills() map[string]map[string]struct{} {
	reverse := make(map[string]map[string]struct{})
	for skill, rec := range skillTable {
		for _, role := range rec.Roles {
			if reverse[role] == nil {
				reverse[role] = make(map[string]struct{})
			}
			reverse[role][skill] = struct{}{}
		}
	}
	return reverse
}

func setOf(items ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
