package lisp

// Example is one entry in the catalogue a front-end displays and loads.
// Name and Code are part of the system boundary: their exact texts are
// load-bearing for any caller that lists or runs them.
type Example struct {
	Name string
	Code string
}

// Examples is the ordered catalogue of the five named sample programs.
var Examples = []Example{
	{
		Name: "Basic Arithmetic",
		Code: `(print (+ 1 2 3 4))
(print (- 10 5))
(print (* 2 3 4))
(print (/ 10 2))
`,
	},
	{
		Name: "List Operations",
		Code: `(print (list 1 2 3))
(print (car (list 1 2 3)))
(print (cdr (list 1 2 3)))
(print (cons 0 (list 1 2 3)))
(print (append (list 1 2) (list 3 4)))
(print (reverse (list 1 2 3)))
`,
	},
	{
		Name: "Factorial Function",
		Code: `(defun factorial (n)
  (if (= n 0)
      1
      (* n (factorial (- n 1)))))

(print (factorial 5))
`,
	},
	{
		Name: "Fibonacci Sequence",
		Code: `(defun fibonacci (n)
  (cond ((= n 0) 0)
        ((= n 1) 1)
        (t (+ (fibonacci (- n 1)) (fibonacci (- n 2))))))

(print (fibonacci 10))
`,
	},
	{
		Name: "Map and Filter",
		Code: `(defun square (x) (* x x))

(defun evenp (x) (= (mod x 2) 0))

(defun filter (pred lst)
  (cond ((null lst) (list))
        ((funcall pred (car lst)) (cons (car lst) (filter pred (cdr lst))))
        (t (filter pred (cdr lst)))))

(print (mapcar (quote square) (list 1 2 3 4 5)))
(print (filter (quote evenp) (list 1 2 3 4 5)))
(print (filter (quote evenp) (list 1 2 3 4 5 6)))
`,
	},
}
